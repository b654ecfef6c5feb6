package registration

import (
	"sort"
	"time"

	"github.com/softwerkskammer/Agora-sub003/core/events"
)

// Participant is the display projection of a currently registered member.
type Participant struct {
	MemberID string          `json:"memberId"`
	RoomType events.RoomType `json:"roomType"`
	Duration int             `json:"duration"`
	JoinedAt time.Time       `json:"joinedSoCraTes"`
}

// WaitinglistParticipant is the display projection of a member holding a
// waitinglist place.
type WaitinglistParticipant struct {
	MemberID          string            `json:"memberId"`
	DesiredRoomTypes  []events.RoomType `json:"desiredRoomTypes"`
	JoinedWaitinglist time.Time         `json:"joinedWaitinglist"`
}

// ReadModel folds the registration stream into queryable, display-oriented
// projections. It answers occupancy and waitinglist questions for the UI
// layer and fullness questions for the command side; it never validates
// commands itself.
type ReadModel struct {
	now time.Time

	participants     map[string]Participant
	participantOrder []string

	waitinglist      map[string]WaitinglistParticipant
	waitinglistOrder []string

	reservations            map[string]events.ReservationWasIssued
	waitinglistReservations map[string]events.WaitinglistReservationWasIssued
}

func NewReadModel(evts []any, now time.Time) *ReadModel {
	m := &ReadModel{
		now:                     now,
		participants:            map[string]Participant{},
		waitinglist:             map[string]WaitinglistParticipant{},
		reservations:            map[string]events.ReservationWasIssued{},
		waitinglistReservations: map[string]events.WaitinglistReservationWasIssued{},
	}
	for _, ev := range evts {
		m.apply(ev)
	}
	return m
}

func (m *ReadModel) apply(ev any) {
	switch e := ev.(type) {
	case *events.ReservationWasIssued:
		m.reservations[e.SessionID] = *e
	case *events.WaitinglistReservationWasIssued:
		m.waitinglistReservations[e.SessionID] = *e

	case *events.ParticipantWasRegistered:
		m.setParticipant(Participant{MemberID: e.MemberID, RoomType: e.RoomType, Duration: e.Duration, JoinedAt: e.JoinedAt})
		delete(m.reservations, e.SessionID)
	case *events.RegisteredParticipantFromWaitinglist:
		m.setParticipant(Participant{MemberID: e.MemberID, RoomType: e.RoomType, Duration: e.Duration, JoinedAt: e.JoinedAt})
		m.removeWaitinglisted(e.MemberID)
	case *events.RoomTypeWasChanged:
		m.setParticipant(Participant{MemberID: e.MemberID, RoomType: e.RoomType, Duration: e.Duration, JoinedAt: e.JoinedAt})
	case *events.DurationWasChanged:
		m.setParticipant(Participant{MemberID: e.MemberID, RoomType: e.RoomType, Duration: e.Duration, JoinedAt: e.JoinedAt})
	case *events.ParticipantWasRemoved:
		m.removeParticipant(e.MemberID)

	case *events.WaitinglistParticipantWasRegistered:
		m.setWaitinglisted(WaitinglistParticipant{MemberID: e.MemberID, DesiredRoomTypes: e.DesiredRoomTypes, JoinedWaitinglist: e.JoinedWaitinglist})
		delete(m.waitinglistReservations, e.SessionID)
	case *events.DesiredRoomTypesWereChanged:
		m.setWaitinglisted(WaitinglistParticipant{MemberID: e.MemberID, DesiredRoomTypes: e.DesiredRoomTypes, JoinedWaitinglist: e.JoinedWaitinglist})
	case *events.WaitinglistParticipantWasRemoved:
		m.removeWaitinglisted(e.MemberID)
	}
}

func (m *ReadModel) setParticipant(p Participant) {
	if _, ok := m.participants[p.MemberID]; !ok {
		m.participantOrder = append(m.participantOrder, p.MemberID)
	}
	m.participants[p.MemberID] = p
}

func (m *ReadModel) removeParticipant(memberID string) {
	delete(m.participants, memberID)
	m.participantOrder = removeString(m.participantOrder, memberID)
}

func (m *ReadModel) setWaitinglisted(w WaitinglistParticipant) {
	if _, ok := m.waitinglist[w.MemberID]; !ok {
		m.waitinglistOrder = append(m.waitinglistOrder, w.MemberID)
	}
	m.waitinglist[w.MemberID] = w
}

func (m *ReadModel) removeWaitinglisted(memberID string) {
	delete(m.waitinglist, memberID)
	m.waitinglistOrder = removeString(m.waitinglistOrder, memberID)
}

func removeString(in []string, s string) []string {
	out := in[:0]
	for _, v := range in {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// === Queries ===

// ParticipantsIn lists the current participants of a room type in
// registration order.
func (m *ReadModel) ParticipantsIn(roomType events.RoomType) []Participant {
	var out []Participant
	for _, id := range m.participantOrder {
		if p := m.participants[id]; p.RoomType == roomType {
			out = append(out, p)
		}
	}
	return out
}

func (m *ReadModel) ParticipantCountFor(roomType events.RoomType) int {
	return len(m.ParticipantsIn(roomType))
}

// ReservationCountFor counts the still-valid reservations held for a room
// type. Expired reservations do not block a slot.
func (m *ReadModel) ReservationCountFor(roomType events.RoomType) int {
	n := 0
	for _, r := range m.reservations {
		if r.RoomType == roomType && r.ValidAt(m.now) {
			n++
		}
	}
	return n
}

// IsFull reports whether a room type has no free slot left under the given
// quota. Valid reservations count as taken slots so two racing sessions
// cannot both hold the last room.
func (m *ReadModel) IsFull(roomType events.RoomType, quota int) bool {
	return m.ParticipantCountFor(roomType)+m.ReservationCountFor(roomType) >= quota
}

// WaitinglistParticipantsFor lists the members waiting for a room type,
// oldest join first (highest priority first).
func (m *ReadModel) WaitinglistParticipantsFor(roomType events.RoomType) []WaitinglistParticipant {
	var out []WaitinglistParticipant
	for _, id := range m.waitinglistOrder {
		w := m.waitinglist[id]
		for _, rt := range w.DesiredRoomTypes {
			if rt == roomType {
				out = append(out, w)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].JoinedWaitinglist.Before(out[j].JoinedWaitinglist)
	})
	return out
}

func (m *ReadModel) IsOnWaitinglist(memberID string) bool {
	_, ok := m.waitinglist[memberID]
	return ok
}

func (m *ReadModel) RoomTypeOf(memberID string) (events.RoomType, bool) {
	p, ok := m.participants[memberID]
	if !ok {
		return "", false
	}
	return p.RoomType, true
}

func (m *ReadModel) DurationFor(memberID string) (int, bool) {
	p, ok := m.participants[memberID]
	if !ok {
		return 0, false
	}
	return p.Duration, true
}

// OccupancyByRoomType summarizes current occupancy for display.
func (m *ReadModel) OccupancyByRoomType() map[events.RoomType]int {
	out := map[events.RoomType]int{}
	for _, p := range m.participants {
		out[p.RoomType]++
	}
	return out
}
