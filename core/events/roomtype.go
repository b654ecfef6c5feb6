package events

import "fmt"

// RoomType identifies one of the bookable room categories of the conference
// venue.
type RoomType string

const (
	RoomSingle      RoomType = "single"
	RoomBedInDouble RoomType = "bed_in_double"
	RoomJuniorAlone RoomType = "junior"
	RoomBedInJunior RoomType = "bed_in_junior"
)

// AllRoomTypes lists every known room type in display order.
func AllRoomTypes() []RoomType {
	return []RoomType{RoomSingle, RoomBedInDouble, RoomJuniorAlone, RoomBedInJunior}
}

func (r RoomType) Valid() bool {
	switch r {
	case RoomSingle, RoomBedInDouble, RoomJuniorAlone, RoomBedInJunior:
		return true
	}
	return false
}

// IsShared reports whether the room type is occupied by two members and can
// therefore be paired.
func (r RoomType) IsShared() bool {
	return r == RoomBedInDouble || r == RoomBedInJunior
}

func ParseRoomType(s string) (RoomType, error) {
	rt := RoomType(s)
	if !rt.Valid() {
		return "", fmt.Errorf("unknown room type: %q", s)
	}
	return rt, nil
}

// SameRoomTypes reports whether two desired-room-type lists are identical,
// including order. Order matters: the list expresses the member's preference.
func SameRoomTypes(a, b []RoomType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
