package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomType(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, rt := range AllRoomTypes() {
			assert.True(t, rt.Valid(), string(rt))
		}
		assert.False(t, RoomType("penthouse").Valid())
		assert.False(t, RoomType("").Valid())
	})

	t.Run("shared", func(t *testing.T) {
		assert.False(t, RoomSingle.IsShared())
		assert.True(t, RoomBedInDouble.IsShared())
		assert.False(t, RoomJuniorAlone.IsShared())
		assert.True(t, RoomBedInJunior.IsShared())
	})

	t.Run("parse", func(t *testing.T) {
		rt, err := ParseRoomType("bed_in_double")
		require.NoError(t, err)
		assert.Equal(t, RoomBedInDouble, rt)

		_, err = ParseRoomType("penthouse")
		require.Error(t, err)
	})
}

func TestSameRoomTypes(t *testing.T) {
	assert.True(t, SameRoomTypes(
		[]RoomType{RoomSingle, RoomBedInDouble},
		[]RoomType{RoomSingle, RoomBedInDouble},
	))
	// Order matters.
	assert.False(t, SameRoomTypes(
		[]RoomType{RoomSingle, RoomBedInDouble},
		[]RoomType{RoomBedInDouble, RoomSingle},
	))
	assert.False(t, SameRoomTypes(
		[]RoomType{RoomSingle},
		[]RoomType{RoomSingle, RoomBedInDouble},
	))
	assert.True(t, SameRoomTypes(nil, nil))
}

func TestReservationValidity(t *testing.T) {
	issuedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	res := ReservationWasIssued{
		RoomType:  RoomSingle,
		Duration:  2,
		SessionID: "session-1",
		MemberID:  "member-1",
		JoinedAt:  issuedAt,
	}

	assert.Equal(t, issuedAt.Add(30*time.Minute), res.Expiration())

	t.Run("valid one minute before expiry", func(t *testing.T) {
		assert.True(t, res.ValidAt(issuedAt.Add(29*time.Minute)))
	})

	t.Run("expired at exactly thirty minutes", func(t *testing.T) {
		assert.False(t, res.ValidAt(issuedAt.Add(30*time.Minute)))
	})

	t.Run("expired after thirty minutes", func(t *testing.T) {
		assert.False(t, res.ValidAt(issuedAt.Add(31*time.Minute)))
	})
}

func TestWaitinglistReservationValidity(t *testing.T) {
	issuedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	res := WaitinglistReservationWasIssued{
		DesiredRoomTypes:  []RoomType{RoomSingle},
		SessionID:         "session-1",
		MemberID:          "member-1",
		JoinedWaitinglist: issuedAt,
	}

	assert.True(t, res.ValidAt(issuedAt.Add(ReservationValidity-time.Second)))
	assert.False(t, res.ValidAt(issuedAt.Add(ReservationValidity)))
}

// Kind strings form the persisted contract; a rename breaks every stored
// document.
func TestEventKinds(t *testing.T) {
	cases := []struct {
		ev   Event
		kind string
	}{
		{ReservationWasIssued{}, "RESERVATION-WAS-ISSUED"},
		{ParticipantWasRegistered{}, "PARTICIPANT-WAS-REGISTERED"},
		{WaitinglistReservationWasIssued{}, "WAITINGLIST-RESERVATION-WAS-ISSUED"},
		{WaitinglistParticipantWasRegistered{}, "WAITINGLIST-PARTICIPANT-WAS-REGISTERED"},
		{RegisteredParticipantFromWaitinglist{}, "REGISTERED-PARTICIPANT-FROM-WAITINGLIST"},
		{DidNotRegisterParticipantFromWaitinglistForFullResource{}, "DID-NOT-REGISTER-PARTICIPANT-FROM-WAITINGLIST-FOR-FULL-RESOURCE"},
		{ParticipantWasRemoved{}, "PARTICIPANT-WAS-REMOVED"},
		{WaitinglistParticipantWasRemoved{}, "WAITINGLIST-PARTICIPANT-WAS-REMOVED"},
		{RoomTypeWasChanged{}, "ROOM-TYPE-WAS-CHANGED"},
		{DurationWasChanged{}, "DURATION-WAS-CHANGED"},
		{DesiredRoomTypesWereChanged{}, "DESIRED-ROOM-TYPES-WERE-CHANGED"},
		{ConferenceWasCreated{}, "CONFERENCE-WAS-CREATED"},
		{RoomQuotaWasSet{}, "ROOM-QUOTA-WAS-SET"},
		{RegistrationWindowWasOpened{}, "REGISTRATION-WINDOW-WAS-OPENED"},
		{RegistrationWindowWasClosed{}, "REGISTRATION-WINDOW-WAS-CLOSED"},
		{RoomPairWasAdded{}, "ROOM-PAIR-WAS-ADDED"},
		{RoomPairWasRemoved{}, "ROOM-PAIR-WAS-REMOVED"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, tc.ev.EventKind())
	}
}
