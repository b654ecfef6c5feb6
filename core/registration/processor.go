package registration

import "github.com/softwerkskammer/Agora-sub003/core/events"

// Processor turns user intents into events. Every command returns exactly one
// event, success or a named rejection, and mutates nothing itself: the event
// stream stays a complete audit log of accepted and rejected operations.
// Technical failures never originate here; they belong to the orchestration
// layer.
type Processor struct {
	model *WriteModel
}

func NewProcessor(model *WriteModel) *Processor {
	return &Processor{model: model}
}

// IssueReservation holds a room slot for the session. roomIsFull is computed
// by the caller from the conference quota and current occupancy, valid
// reservations included.
func (p *Processor) IssueReservation(roomType events.RoomType, duration int, sessionID, memberID string, roomIsFull bool) events.Event {
	if p.model.AlreadyHasReservation(sessionID) {
		return events.DidNotIssueReservationForAlreadyReservedSession{
			RoomType: roomType, Duration: duration, SessionID: sessionID, MemberID: memberID,
		}
	}
	if roomIsFull {
		return events.DidNotIssueReservationForFullResource{
			RoomType: roomType, Duration: duration, SessionID: sessionID, MemberID: memberID,
		}
	}
	return events.ReservationWasIssued{
		RoomType: roomType, Duration: duration, SessionID: sessionID, MemberID: memberID,
		JoinedAt: p.model.now,
	}
}

// RegisterParticipant confirms a live reservation. Only the reserved room
// type can be confirmed: the reservation is what passed the fullness gate, so
// a reservation held for a different room type counts as missing for the
// requested one. The queue position (JoinedAt) of the reservation is carried
// over so that racing confirms keep their original order.
func (p *Processor) RegisterParticipant(roomType events.RoomType, duration int, sessionID, memberID string) events.Event {
	if p.model.IsAlreadyRegistered(memberID) {
		return events.DidNotRegisterParticipantASecondTime{
			RoomType: roomType, Duration: duration, SessionID: sessionID, MemberID: memberID,
		}
	}
	res, ok := p.model.Reservation(sessionID)
	if !ok || res.RoomType != roomType {
		return events.DidNotRegisterParticipantWithExpiredOrMissingReservation{
			RoomType: roomType, Duration: duration, SessionID: sessionID, MemberID: memberID,
		}
	}
	return events.ParticipantWasRegistered{
		RoomType: roomType, Duration: duration, SessionID: sessionID, MemberID: memberID,
		JoinedAt: res.JoinedAt,
	}
}

func (p *Processor) IssueWaitinglistReservation(desiredRoomTypes []events.RoomType, sessionID, memberID string) events.Event {
	if p.model.AlreadyHasWaitinglistReservation(sessionID) {
		return events.DidNotIssueWaitinglistReservationForAlreadyReservedSession{
			DesiredRoomTypes: desiredRoomTypes, SessionID: sessionID, MemberID: memberID,
		}
	}
	return events.WaitinglistReservationWasIssued{
		DesiredRoomTypes: desiredRoomTypes, SessionID: sessionID, MemberID: memberID,
		JoinedWaitinglist: p.model.now,
	}
}

func (p *Processor) RegisterWaitinglistParticipant(desiredRoomTypes []events.RoomType, sessionID, memberID string) events.Event {
	if p.model.IsAlreadyRegistered(memberID) || p.model.IsAlreadyOnWaitinglist(memberID) {
		return events.DidNotRegisterWaitinglistParticipantASecondTime{
			DesiredRoomTypes: desiredRoomTypes, SessionID: sessionID, MemberID: memberID,
		}
	}
	res, ok := p.model.WaitinglistReservation(sessionID)
	if !ok {
		return events.DidNotRegisterWaitinglistParticipantWithExpiredOrMissingReservation{
			DesiredRoomTypes: desiredRoomTypes, SessionID: sessionID, MemberID: memberID,
		}
	}
	return events.WaitinglistParticipantWasRegistered{
		DesiredRoomTypes: desiredRoomTypes, SessionID: sessionID, MemberID: memberID,
		JoinedWaitinglist: res.JoinedWaitinglist,
	}
}

// FromWaitinglistToParticipant promotes a waitlisted member into a room.
// Admin-triggered: no reservation is involved, but the target room still has
// to have a free slot. roomIsFull is computed by the caller from the
// conference quota and current occupancy, the same gate reservations pass.
func (p *Processor) FromWaitinglistToParticipant(roomType events.RoomType, duration int, memberID string, roomIsFull bool) events.Event {
	if p.model.IsAlreadyRegistered(memberID) {
		return events.DidNotRegisterParticipantFromWaitinglistASecondTime{
			RoomType: roomType, Duration: duration, MemberID: memberID,
		}
	}
	if !p.model.IsAlreadyOnWaitinglist(memberID) {
		return events.DidNotRegisterParticipantFromWaitinglistBecauseTheyWereNotOnWaitinglist{
			RoomType: roomType, Duration: duration, MemberID: memberID,
		}
	}
	if roomIsFull {
		return events.DidNotRegisterParticipantFromWaitinglistForFullResource{
			RoomType: roomType, Duration: duration, MemberID: memberID,
		}
	}
	return events.RegisteredParticipantFromWaitinglist{
		RoomType: roomType, Duration: duration, MemberID: memberID,
		JoinedAt: p.model.now,
	}
}

func (p *Processor) RemoveParticipant(roomType events.RoomType, memberID string) events.Event {
	if !p.model.IsAlreadyRegistered(memberID) {
		return events.DidNotRemoveParticipantBecauseTheyAreNotRegistered{
			RoomType: roomType, MemberID: memberID,
		}
	}
	if !p.model.IsRegisteredInRoomType(memberID, roomType) {
		return events.DidNotRemoveParticipantBecauseTheyAreNotRegisteredForThisRoomType{
			RoomType: roomType, MemberID: memberID,
		}
	}
	return events.ParticipantWasRemoved{RoomType: roomType, MemberID: memberID}
}

func (p *Processor) RemoveWaitinglistParticipant(memberID string) events.Event {
	desired, ok := p.model.DesiredRoomTypesOf(memberID)
	if !ok {
		return events.DidNotRemoveWaitinglistParticipantBecauseTheyAreNotRegistered{MemberID: memberID}
	}
	return events.WaitinglistParticipantWasRemoved{DesiredRoomTypes: desired, MemberID: memberID}
}

func (p *Processor) MoveParticipantToNewRoomType(roomType events.RoomType, memberID string) events.Event {
	if !p.model.IsAlreadyRegistered(memberID) {
		return events.DidNotChangeRoomTypeForNonParticipant{RoomType: roomType, MemberID: memberID}
	}
	cur := p.model.participants[memberID]
	return events.RoomTypeWasChanged{
		RoomType: roomType, Duration: cur.duration, MemberID: memberID, JoinedAt: cur.joinedAt,
	}
}

func (p *Processor) SetNewDurationForParticipant(duration int, memberID string) events.Event {
	if !p.model.IsAlreadyRegistered(memberID) {
		return events.DidNotChangeDurationForNonParticipant{Duration: duration, MemberID: memberID}
	}
	cur := p.model.participants[memberID]
	return events.DurationWasChanged{
		RoomType: cur.roomType, Duration: duration, MemberID: memberID, JoinedAt: cur.joinedAt,
	}
}

func (p *Processor) ChangeDesiredRoomTypes(desiredRoomTypes []events.RoomType, memberID string) events.Event {
	if len(desiredRoomTypes) == 0 {
		return events.DidNotChangeDesiredRoomTypesBecauseNoRoomTypesWereSelected{MemberID: memberID}
	}
	current, ok := p.model.DesiredRoomTypesOf(memberID)
	if !ok {
		return events.DidNotChangeDesiredRoomTypesBecauseParticipantIsNotOnWaitinglist{
			DesiredRoomTypes: desiredRoomTypes, MemberID: memberID,
		}
	}
	if events.SameRoomTypes(current, desiredRoomTypes) {
		return events.DidNotChangeDesiredRoomTypesBecauseThereWasNoChange{
			DesiredRoomTypes: desiredRoomTypes, MemberID: memberID,
		}
	}
	joined, _ := p.model.waitinglistJoinTimeOf(memberID)
	return events.DesiredRoomTypesWereChanged{
		DesiredRoomTypes: desiredRoomTypes, MemberID: memberID, JoinedWaitinglist: joined,
	}
}
