// Package rooms manages explicit pairings of two members sharing a
// double-occupancy room. Pairing is an admin tool working on unchecked
// input: beyond rejecting a member paired with themselves, the command side
// deliberately does not prevent double-pairing; the read model simply
// reports what the log says.
package rooms

import "github.com/softwerkskammer/Agora-sub003/core/events"

// Pair is one room-sharing association.
type Pair struct {
	RoomType     events.RoomType `json:"roomType"`
	ParticipantA string          `json:"participant1Id"`
	ParticipantB string          `json:"participant2Id"`
}

// ReadModel folds the rooms stream into the current set of pairs per room
// type. A removal only cancels a matching earlier addition.
type ReadModel struct {
	pairs []Pair
}

func NewReadModel(evts []any) *ReadModel {
	m := &ReadModel{}
	for _, ev := range evts {
		m.apply(ev)
	}
	return m
}

func (m *ReadModel) apply(ev any) {
	switch e := ev.(type) {
	case *events.RoomPairWasAdded:
		m.pairs = append(m.pairs, Pair{RoomType: e.RoomType, ParticipantA: e.ParticipantA, ParticipantB: e.ParticipantB})
	case *events.RoomPairWasRemoved:
		for i, p := range m.pairs {
			if p.RoomType == e.RoomType && p.ParticipantA == e.ParticipantA && p.ParticipantB == e.ParticipantB {
				m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)
				break
			}
		}
	}
}

// PairsFor lists the pairs of a room type in pairing order.
func (m *ReadModel) PairsFor(roomType events.RoomType) []Pair {
	var out []Pair
	for _, p := range m.pairs {
		if p.RoomType == roomType {
			out = append(out, p)
		}
	}
	return out
}

// ParticipantsInRoom flattens the pairs of a room type into the member ids
// that have a room assignment, in pairing order.
func (m *ReadModel) ParticipantsInRoom(roomType events.RoomType) []string {
	var out []string
	for _, p := range m.PairsFor(roomType) {
		out = append(out, p.ParticipantA, p.ParticipantB)
	}
	return out
}

// ParticipantsWithoutRoomIn lists the members registered for a room type that
// do not appear in any pair yet.
func (m *ReadModel) ParticipantsWithoutRoomIn(roomType events.RoomType, registered []string) []string {
	paired := map[string]bool{}
	for _, id := range m.ParticipantsInRoom(roomType) {
		paired[id] = true
	}
	var out []string
	for _, id := range registered {
		if !paired[id] {
			out = append(out, id)
		}
	}
	return out
}

// RoommateFor returns the partner of a member in a room type, scanning pairs
// for a match in either position. Absent when the member is unpaired. With
// double-pairing present in the log the first match wins.
func (m *ReadModel) RoommateFor(roomType events.RoomType, memberID string) (string, bool) {
	for _, p := range m.PairsFor(roomType) {
		if p.ParticipantA == memberID {
			return p.ParticipantB, true
		}
		if p.ParticipantB == memberID {
			return p.ParticipantA, true
		}
	}
	return "", false
}

// Processor emits pairing events. The only guard is that a member cannot be
// paired with themselves.
type Processor struct {
	model *ReadModel
}

func NewProcessor(model *ReadModel) *Processor {
	return &Processor{model: model}
}

func (p *Processor) AddRoomPair(roomType events.RoomType, memberIDA, memberIDB string) events.Event {
	if memberIDA == memberIDB {
		return events.DidNotAddRoomPairBecauseMembersAreIdentical{RoomType: roomType, MemberID: memberIDA}
	}
	return events.RoomPairWasAdded{RoomType: roomType, ParticipantA: memberIDA, ParticipantB: memberIDB}
}

func (p *Processor) RemoveRoomPair(roomType events.RoomType, memberIDA, memberIDB string) events.Event {
	return events.RoomPairWasRemoved{RoomType: roomType, ParticipantA: memberIDA, ParticipantB: memberIDB}
}
