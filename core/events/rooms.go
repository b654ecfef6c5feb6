package events

// Event kinds of the rooms (pairing) stream.
const (
	KindRoomPairWasAdded   = "ROOM-PAIR-WAS-ADDED"
	KindRoomPairWasRemoved = "ROOM-PAIR-WAS-REMOVED"
	KindDidNotAddRoomPairBecauseMembersAreIdentical = "DID-NOT-ADD-ROOM-PAIR-BECAUSE-MEMBERS-ARE-IDENTICAL"
)

// RoomPairWasAdded associates two members sharing one double-occupancy room.
// Pairing is an admin tool and deliberately unchecked beyond identity of the
// two members: double-pairing is representable in the log.
type RoomPairWasAdded struct {
	RoomType     RoomType `json:"roomType"`
	ParticipantA string   `json:"participant1Id"`
	ParticipantB string   `json:"participant2Id"`
}

func (RoomPairWasAdded) EventKind() string { return KindRoomPairWasAdded }

type RoomPairWasRemoved struct {
	RoomType     RoomType `json:"roomType"`
	ParticipantA string   `json:"participant1Id"`
	ParticipantB string   `json:"participant2Id"`
}

func (RoomPairWasRemoved) EventKind() string { return KindRoomPairWasRemoved }

type DidNotAddRoomPairBecauseMembersAreIdentical struct {
	RoomType RoomType `json:"roomType"`
	MemberID string   `json:"memberId"`
}

func (DidNotAddRoomPairBecauseMembersAreIdentical) EventKind() string {
	return KindDidNotAddRoomPairBecauseMembersAreIdentical
}
