package events

// Event kinds of the socrates (conference configuration) stream.
const (
	KindConferenceWasCreated       = "CONFERENCE-WAS-CREATED"
	KindRoomQuotaWasSet            = "ROOM-QUOTA-WAS-SET"
	KindDidNotSetRoomQuotaBecauseItWasNegative = "DID-NOT-SET-ROOM-QUOTA-BECAUSE-IT-WAS-NEGATIVE"
	KindRegistrationWindowWasOpened = "REGISTRATION-WINDOW-WAS-OPENED"
	KindRegistrationWindowWasClosed = "REGISTRATION-WINDOW-WAS-CLOSED"
)

type ConferenceWasCreated struct {
	URL string `json:"url"`
}

func (ConferenceWasCreated) EventKind() string { return KindConferenceWasCreated }

// RoomQuotaWasSet changes the capacity of a room type. Quotas apply to future
// commands only; already registered participants are never evicted by a
// shrinking quota.
type RoomQuotaWasSet struct {
	RoomType RoomType `json:"roomType"`
	Quota    int      `json:"quota"`
}

func (RoomQuotaWasSet) EventKind() string { return KindRoomQuotaWasSet }

type DidNotSetRoomQuotaBecauseItWasNegative struct {
	RoomType RoomType `json:"roomType"`
	Quota    int      `json:"quota"`
}

func (DidNotSetRoomQuotaBecauseItWasNegative) EventKind() string {
	return KindDidNotSetRoomQuotaBecauseItWasNegative
}

type RegistrationWindowWasOpened struct{}

func (RegistrationWindowWasOpened) EventKind() string { return KindRegistrationWindowWasOpened }

type RegistrationWindowWasClosed struct{}

func (RegistrationWindowWasClosed) EventKind() string { return KindRegistrationWindowWasClosed }
