// Package registration holds the write model, command processor and read
// model for reserving and registering conference rooms, including the
// waitinglist fallback.
package registration

import (
	"time"

	"github.com/softwerkskammer/Agora-sub003/core/events"
)

// participant is the current occupancy of one member, derived from the most
// recent registration/change/removal event for that member.
type participant struct {
	roomType events.RoomType
	duration int
	joinedAt time.Time
}

type waitinglistEntry struct {
	desiredRoomTypes  []events.RoomType
	joinedWaitinglist time.Time
}

// WriteModel folds the registration stream into the minimal state needed to
// validate the next command. It is rebuilt from scratch per command execution
// and never shared between commands; folding is deterministic, so folding the
// same stream twice yields identical state.
type WriteModel struct {
	now time.Time

	reservations            map[string]events.ReservationWasIssued
	waitinglistReservations map[string]events.WaitinglistReservationWasIssued
	participants            map[string]participant
	waitinglist             map[string]waitinglistEntry
}

// NewWriteModel folds decoded registration events. now is the decision
// instant used for every reservation-expiry check of the command that runs
// against this model.
func NewWriteModel(evts []any, now time.Time) *WriteModel {
	m := &WriteModel{
		now:                     now,
		reservations:            map[string]events.ReservationWasIssued{},
		waitinglistReservations: map[string]events.WaitinglistReservationWasIssued{},
		participants:            map[string]participant{},
		waitinglist:             map[string]waitinglistEntry{},
	}
	for _, ev := range evts {
		m.apply(ev)
	}
	return m
}

func (m *WriteModel) apply(ev any) {
	switch e := ev.(type) {
	case *events.ReservationWasIssued:
		m.reservations[e.SessionID] = *e
	case *events.WaitinglistReservationWasIssued:
		m.waitinglistReservations[e.SessionID] = *e

	case *events.ParticipantWasRegistered:
		m.participants[e.MemberID] = participant{roomType: e.RoomType, duration: e.Duration, joinedAt: e.JoinedAt}
		delete(m.reservations, e.SessionID)
	case *events.WaitinglistParticipantWasRegistered:
		m.waitinglist[e.MemberID] = waitinglistEntry{desiredRoomTypes: e.DesiredRoomTypes, joinedWaitinglist: e.JoinedWaitinglist}
		delete(m.waitinglistReservations, e.SessionID)
	case *events.RegisteredParticipantFromWaitinglist:
		m.participants[e.MemberID] = participant{roomType: e.RoomType, duration: e.Duration, joinedAt: e.JoinedAt}
		delete(m.waitinglist, e.MemberID)

	case *events.ParticipantWasRemoved:
		delete(m.participants, e.MemberID)
	case *events.WaitinglistParticipantWasRemoved:
		delete(m.waitinglist, e.MemberID)

	case *events.RoomTypeWasChanged:
		m.participants[e.MemberID] = participant{roomType: e.RoomType, duration: e.Duration, joinedAt: e.JoinedAt}
	case *events.DurationWasChanged:
		m.participants[e.MemberID] = participant{roomType: e.RoomType, duration: e.Duration, joinedAt: e.JoinedAt}
	case *events.DesiredRoomTypesWereChanged:
		m.waitinglist[e.MemberID] = waitinglistEntry{desiredRoomTypes: e.DesiredRoomTypes, joinedWaitinglist: e.JoinedWaitinglist}
	}
	// rejection events do not change state
}

// === Participant queries ===

func (m *WriteModel) IsAlreadyRegistered(memberID string) bool {
	_, ok := m.participants[memberID]
	return ok
}

func (m *WriteModel) IsRegisteredInRoomType(memberID string, roomType events.RoomType) bool {
	p, ok := m.participants[memberID]
	return ok && p.roomType == roomType
}

// RoomTypesOf returns the room types the member currently occupies. A member
// holds at most one room type at a time, so the result has zero or one
// entries.
func (m *WriteModel) RoomTypesOf(memberID string) []events.RoomType {
	p, ok := m.participants[memberID]
	if !ok {
		return nil
	}
	return []events.RoomType{p.roomType}
}

func (m *WriteModel) DurationOf(memberID string) (int, bool) {
	p, ok := m.participants[memberID]
	if !ok {
		return 0, false
	}
	return p.duration, true
}

// === Waitinglist queries ===

func (m *WriteModel) IsAlreadyOnWaitinglist(memberID string) bool {
	_, ok := m.waitinglist[memberID]
	return ok
}

func (m *WriteModel) DesiredRoomTypesOf(memberID string) ([]events.RoomType, bool) {
	e, ok := m.waitinglist[memberID]
	if !ok {
		return nil, false
	}
	return e.desiredRoomTypes, true
}

func (m *WriteModel) waitinglistJoinTimeOf(memberID string) (time.Time, bool) {
	e, ok := m.waitinglist[memberID]
	if !ok {
		return time.Time{}, false
	}
	return e.joinedWaitinglist, true
}

// === Reservation queries ===
//
// Expired reservations are treated as absent by every query below; no
// explicit deletion event exists.

func (m *WriteModel) Reservation(sessionID string) (events.ReservationWasIssued, bool) {
	r, ok := m.reservations[sessionID]
	if !ok || !r.ValidAt(m.now) {
		return events.ReservationWasIssued{}, false
	}
	return r, true
}

func (m *WriteModel) AlreadyHasReservation(sessionID string) bool {
	_, ok := m.Reservation(sessionID)
	return ok
}

func (m *WriteModel) HasValidReservationFor(sessionID string) bool {
	return m.AlreadyHasReservation(sessionID)
}

func (m *WriteModel) WaitinglistReservation(sessionID string) (events.WaitinglistReservationWasIssued, bool) {
	r, ok := m.waitinglistReservations[sessionID]
	if !ok || !r.ValidAt(m.now) {
		return events.WaitinglistReservationWasIssued{}, false
	}
	return r, true
}

func (m *WriteModel) AlreadyHasWaitinglistReservation(sessionID string) bool {
	_, ok := m.WaitinglistReservation(sessionID)
	return ok
}

func (m *WriteModel) HasValidWaitinglistReservationFor(sessionID string) bool {
	return m.AlreadyHasWaitinglistReservation(sessionID)
}

// ReservationExpiration returns when the session's live reservation (room or
// waitinglist) stops being valid. Absent when the session holds none or the
// reservation already expired.
func (m *WriteModel) ReservationExpiration(sessionID string) (time.Time, bool) {
	if r, ok := m.Reservation(sessionID); ok {
		return r.Expiration(), true
	}
	if r, ok := m.WaitinglistReservation(sessionID); ok {
		return r.Expiration(), true
	}
	return time.Time{}, false
}
