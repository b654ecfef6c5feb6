package events

import "time"

// ReservationValidity is how long an issued reservation holds a slot. A
// reservation issued at t is valid strictly before t+ReservationValidity;
// at exactly t+ReservationValidity it is expired.
const ReservationValidity = 30 * time.Minute

// Event kinds of the registration stream.
const (
	KindReservationWasIssued                              = "RESERVATION-WAS-ISSUED"
	KindDidNotIssueReservationForAlreadyReservedSession   = "DID-NOT-ISSUE-RESERVATION-FOR-ALREADY-RESERVED-SESSION"
	KindDidNotIssueReservationForFullResource             = "DID-NOT-ISSUE-RESERVATION-FOR-FULL-RESOURCE"
	KindParticipantWasRegistered                          = "PARTICIPANT-WAS-REGISTERED"
	KindDidNotRegisterParticipantASecondTime              = "DID-NOT-REGISTER-PARTICIPANT-A-SECOND-TIME"
	KindDidNotRegisterParticipantWithExpiredOrMissingRes  = "DID-NOT-REGISTER-PARTICIPANT-WITH-EXPIRED-OR-MISSING-RESERVATION"
	KindWaitinglistReservationWasIssued                   = "WAITINGLIST-RESERVATION-WAS-ISSUED"
	KindDidNotIssueWaitinglistReservationForAlreadyReservedSession = "DID-NOT-ISSUE-WAITINGLIST-RESERVATION-FOR-ALREADY-RESERVED-SESSION"
	KindWaitinglistParticipantWasRegistered               = "WAITINGLIST-PARTICIPANT-WAS-REGISTERED"
	KindDidNotRegisterWaitinglistParticipantASecondTime   = "DID-NOT-REGISTER-WAITINGLIST-PARTICIPANT-A-SECOND-TIME"
	KindDidNotRegisterWaitinglistParticipantWithExpiredOrMissingRes = "DID-NOT-REGISTER-WAITINGLIST-PARTICIPANT-WITH-EXPIRED-OR-MISSING-RESERVATION"
	KindRegisteredParticipantFromWaitinglist              = "REGISTERED-PARTICIPANT-FROM-WAITINGLIST"
	KindDidNotRegisterParticipantFromWaitinglistASecondTime = "DID-NOT-REGISTER-PARTICIPANT-FROM-WAITINGLIST-A-SECOND-TIME"
	KindDidNotRegisterParticipantFromWaitinglistForFullResource = "DID-NOT-REGISTER-PARTICIPANT-FROM-WAITINGLIST-FOR-FULL-RESOURCE"
	KindDidNotRegisterParticipantFromWaitinglistBecauseTheyWereNotOnWaitinglist = "DID-NOT-REGISTER-PARTICIPANT-FROM-WAITINGLIST-BECAUSE-THEY-WERE-NOT-ON-WAITINGLIST"
	KindParticipantWasRemoved                             = "PARTICIPANT-WAS-REMOVED"
	KindDidNotRemoveParticipantBecauseTheyAreNotRegistered = "DID-NOT-REMOVE-PARTICIPANT-BECAUSE-THEY-ARE-NOT-REGISTERED"
	KindDidNotRemoveParticipantBecauseTheyAreNotRegisteredForThisRoomType = "DID-NOT-REMOVE-PARTICIPANT-BECAUSE-THEY-ARE-NOT-REGISTERED-FOR-THIS-ROOM-TYPE"
	KindWaitinglistParticipantWasRemoved                  = "WAITINGLIST-PARTICIPANT-WAS-REMOVED"
	KindDidNotRemoveWaitinglistParticipantBecauseTheyAreNotRegistered = "DID-NOT-REMOVE-WAITINGLIST-PARTICIPANT-BECAUSE-THEY-ARE-NOT-REGISTERED"
	KindRoomTypeWasChanged                                = "ROOM-TYPE-WAS-CHANGED"
	KindDidNotChangeRoomTypeForNonParticipant             = "DID-NOT-CHANGE-ROOM-TYPE-FOR-NON-PARTICIPANT"
	KindDurationWasChanged                                = "DURATION-WAS-CHANGED"
	KindDidNotChangeDurationForNonParticipant             = "DID-NOT-CHANGE-DURATION-FOR-NON-PARTICIPANT"
	KindDesiredRoomTypesWereChanged                       = "DESIRED-ROOM-TYPES-WERE-CHANGED"
	KindDidNotChangeDesiredRoomTypesBecauseNoRoomTypesWereSelected = "DID-NOT-CHANGE-DESIRED-ROOM-TYPES-BECAUSE-NO-ROOM-TYPES-WERE-SELECTED"
	KindDidNotChangeDesiredRoomTypesBecauseParticipantIsNotOnWaitinglist = "DID-NOT-CHANGE-DESIRED-ROOM-TYPES-BECAUSE-PARTICIPANT-IS-NOT-ON-WAITINGLIST"
	KindDidNotChangeDesiredRoomTypesBecauseThereWasNoChange = "DID-NOT-CHANGE-DESIRED-ROOM-TYPES-BECAUSE-THERE-WAS-NO-CHANGE"
)

// Event is implemented by every catalog entry.
type Event interface{ EventKind() string }

// === Reservations ===

// ReservationWasIssued holds a room slot for SessionID until the reservation
// expires. JoinedAt establishes the member's queue position and is carried
// over into the registration event when the reservation is confirmed.
type ReservationWasIssued struct {
	RoomType  RoomType  `json:"roomType"`
	Duration  int       `json:"duration"`
	SessionID string    `json:"sessionId"`
	MemberID  string    `json:"memberId"`
	JoinedAt  time.Time `json:"joinedSoCraTes"`
}

func (ReservationWasIssued) EventKind() string { return KindReservationWasIssued }

// Expiration is the instant at which the reservation stops being valid.
func (e ReservationWasIssued) Expiration() time.Time { return e.JoinedAt.Add(ReservationValidity) }

// ValidAt reports whether the reservation still holds its slot at now.
// The boundary is exclusive: a reservation is expired at exactly
// JoinedAt+ReservationValidity.
func (e ReservationWasIssued) ValidAt(now time.Time) bool { return now.Before(e.Expiration()) }

type DidNotIssueReservationForAlreadyReservedSession struct {
	RoomType  RoomType `json:"roomType"`
	Duration  int      `json:"duration"`
	SessionID string   `json:"sessionId"`
	MemberID  string   `json:"memberId"`
}

func (DidNotIssueReservationForAlreadyReservedSession) EventKind() string {
	return KindDidNotIssueReservationForAlreadyReservedSession
}

type DidNotIssueReservationForFullResource struct {
	RoomType  RoomType `json:"roomType"`
	Duration  int      `json:"duration"`
	SessionID string   `json:"sessionId"`
	MemberID  string   `json:"memberId"`
}

func (DidNotIssueReservationForFullResource) EventKind() string {
	return KindDidNotIssueReservationForFullResource
}

// === Participants ===

type ParticipantWasRegistered struct {
	RoomType  RoomType  `json:"roomType"`
	Duration  int       `json:"duration"`
	SessionID string    `json:"sessionId"`
	MemberID  string    `json:"memberId"`
	JoinedAt  time.Time `json:"joinedSoCraTes"`
}

func (ParticipantWasRegistered) EventKind() string { return KindParticipantWasRegistered }

type DidNotRegisterParticipantASecondTime struct {
	RoomType  RoomType `json:"roomType"`
	Duration  int      `json:"duration"`
	SessionID string   `json:"sessionId"`
	MemberID  string   `json:"memberId"`
}

func (DidNotRegisterParticipantASecondTime) EventKind() string {
	return KindDidNotRegisterParticipantASecondTime
}

type DidNotRegisterParticipantWithExpiredOrMissingReservation struct {
	RoomType  RoomType `json:"roomType"`
	Duration  int      `json:"duration"`
	SessionID string   `json:"sessionId"`
	MemberID  string   `json:"memberId"`
}

func (DidNotRegisterParticipantWithExpiredOrMissingReservation) EventKind() string {
	return KindDidNotRegisterParticipantWithExpiredOrMissingRes
}

// === Waitinglist ===

type WaitinglistReservationWasIssued struct {
	DesiredRoomTypes  []RoomType `json:"desiredRoomTypes"`
	SessionID         string     `json:"sessionId"`
	MemberID          string     `json:"memberId"`
	JoinedWaitinglist time.Time  `json:"joinedWaitinglist"`
}

func (WaitinglistReservationWasIssued) EventKind() string {
	return KindWaitinglistReservationWasIssued
}

func (e WaitinglistReservationWasIssued) Expiration() time.Time {
	return e.JoinedWaitinglist.Add(ReservationValidity)
}

func (e WaitinglistReservationWasIssued) ValidAt(now time.Time) bool {
	return now.Before(e.Expiration())
}

type DidNotIssueWaitinglistReservationForAlreadyReservedSession struct {
	DesiredRoomTypes []RoomType `json:"desiredRoomTypes"`
	SessionID        string     `json:"sessionId"`
	MemberID         string     `json:"memberId"`
}

func (DidNotIssueWaitinglistReservationForAlreadyReservedSession) EventKind() string {
	return KindDidNotIssueWaitinglistReservationForAlreadyReservedSession
}

type WaitinglistParticipantWasRegistered struct {
	DesiredRoomTypes  []RoomType `json:"desiredRoomTypes"`
	SessionID         string     `json:"sessionId"`
	MemberID          string     `json:"memberId"`
	JoinedWaitinglist time.Time  `json:"joinedWaitinglist"`
}

func (WaitinglistParticipantWasRegistered) EventKind() string {
	return KindWaitinglistParticipantWasRegistered
}

type DidNotRegisterWaitinglistParticipantASecondTime struct {
	DesiredRoomTypes []RoomType `json:"desiredRoomTypes"`
	SessionID        string     `json:"sessionId"`
	MemberID         string     `json:"memberId"`
}

func (DidNotRegisterWaitinglistParticipantASecondTime) EventKind() string {
	return KindDidNotRegisterWaitinglistParticipantASecondTime
}

type DidNotRegisterWaitinglistParticipantWithExpiredOrMissingReservation struct {
	DesiredRoomTypes []RoomType `json:"desiredRoomTypes"`
	SessionID        string     `json:"sessionId"`
	MemberID         string     `json:"memberId"`
}

func (DidNotRegisterWaitinglistParticipantWithExpiredOrMissingReservation) EventKind() string {
	return KindDidNotRegisterWaitinglistParticipantWithExpiredOrMissingRes
}

type RegisteredParticipantFromWaitinglist struct {
	RoomType RoomType  `json:"roomType"`
	Duration int       `json:"duration"`
	MemberID string    `json:"memberId"`
	JoinedAt time.Time `json:"joinedSoCraTes"`
}

func (RegisteredParticipantFromWaitinglist) EventKind() string {
	return KindRegisteredParticipantFromWaitinglist
}

type DidNotRegisterParticipantFromWaitinglistASecondTime struct {
	RoomType RoomType `json:"roomType"`
	Duration int      `json:"duration"`
	MemberID string   `json:"memberId"`
}

func (DidNotRegisterParticipantFromWaitinglistASecondTime) EventKind() string {
	return KindDidNotRegisterParticipantFromWaitinglistASecondTime
}

type DidNotRegisterParticipantFromWaitinglistForFullResource struct {
	RoomType RoomType `json:"roomType"`
	Duration int      `json:"duration"`
	MemberID string   `json:"memberId"`
}

func (DidNotRegisterParticipantFromWaitinglistForFullResource) EventKind() string {
	return KindDidNotRegisterParticipantFromWaitinglistForFullResource
}

type DidNotRegisterParticipantFromWaitinglistBecauseTheyWereNotOnWaitinglist struct {
	RoomType RoomType `json:"roomType"`
	Duration int      `json:"duration"`
	MemberID string   `json:"memberId"`
}

func (DidNotRegisterParticipantFromWaitinglistBecauseTheyWereNotOnWaitinglist) EventKind() string {
	return KindDidNotRegisterParticipantFromWaitinglistBecauseTheyWereNotOnWaitinglist
}

// === Removal ===

type ParticipantWasRemoved struct {
	RoomType RoomType `json:"roomType"`
	MemberID string   `json:"memberId"`
}

func (ParticipantWasRemoved) EventKind() string { return KindParticipantWasRemoved }

type DidNotRemoveParticipantBecauseTheyAreNotRegistered struct {
	RoomType RoomType `json:"roomType"`
	MemberID string   `json:"memberId"`
}

func (DidNotRemoveParticipantBecauseTheyAreNotRegistered) EventKind() string {
	return KindDidNotRemoveParticipantBecauseTheyAreNotRegistered
}

type DidNotRemoveParticipantBecauseTheyAreNotRegisteredForThisRoomType struct {
	RoomType RoomType `json:"roomType"`
	MemberID string   `json:"memberId"`
}

func (DidNotRemoveParticipantBecauseTheyAreNotRegisteredForThisRoomType) EventKind() string {
	return KindDidNotRemoveParticipantBecauseTheyAreNotRegisteredForThisRoomType
}

type WaitinglistParticipantWasRemoved struct {
	DesiredRoomTypes []RoomType `json:"desiredRoomTypes"`
	MemberID         string     `json:"memberId"`
}

func (WaitinglistParticipantWasRemoved) EventKind() string {
	return KindWaitinglistParticipantWasRemoved
}

type DidNotRemoveWaitinglistParticipantBecauseTheyAreNotRegistered struct {
	MemberID string `json:"memberId"`
}

func (DidNotRemoveWaitinglistParticipantBecauseTheyAreNotRegistered) EventKind() string {
	return KindDidNotRemoveWaitinglistParticipantBecauseTheyAreNotRegistered
}

// === Changes ===

type RoomTypeWasChanged struct {
	RoomType RoomType  `json:"roomType"`
	Duration int       `json:"duration"`
	MemberID string    `json:"memberId"`
	JoinedAt time.Time `json:"joinedSoCraTes"`
}

func (RoomTypeWasChanged) EventKind() string { return KindRoomTypeWasChanged }

type DidNotChangeRoomTypeForNonParticipant struct {
	RoomType RoomType `json:"roomType"`
	MemberID string   `json:"memberId"`
}

func (DidNotChangeRoomTypeForNonParticipant) EventKind() string {
	return KindDidNotChangeRoomTypeForNonParticipant
}

type DurationWasChanged struct {
	RoomType RoomType  `json:"roomType"`
	Duration int       `json:"duration"`
	MemberID string    `json:"memberId"`
	JoinedAt time.Time `json:"joinedSoCraTes"`
}

func (DurationWasChanged) EventKind() string { return KindDurationWasChanged }

type DidNotChangeDurationForNonParticipant struct {
	Duration int    `json:"duration"`
	MemberID string `json:"memberId"`
}

func (DidNotChangeDurationForNonParticipant) EventKind() string {
	return KindDidNotChangeDurationForNonParticipant
}

type DesiredRoomTypesWereChanged struct {
	DesiredRoomTypes  []RoomType `json:"desiredRoomTypes"`
	MemberID          string     `json:"memberId"`
	JoinedWaitinglist time.Time  `json:"joinedWaitinglist"`
}

func (DesiredRoomTypesWereChanged) EventKind() string { return KindDesiredRoomTypesWereChanged }

type DidNotChangeDesiredRoomTypesBecauseNoRoomTypesWereSelected struct {
	MemberID string `json:"memberId"`
}

func (DidNotChangeDesiredRoomTypesBecauseNoRoomTypesWereSelected) EventKind() string {
	return KindDidNotChangeDesiredRoomTypesBecauseNoRoomTypesWereSelected
}

type DidNotChangeDesiredRoomTypesBecauseParticipantIsNotOnWaitinglist struct {
	DesiredRoomTypes []RoomType `json:"desiredRoomTypes"`
	MemberID         string     `json:"memberId"`
}

func (DidNotChangeDesiredRoomTypesBecauseParticipantIsNotOnWaitinglist) EventKind() string {
	return KindDidNotChangeDesiredRoomTypesBecauseParticipantIsNotOnWaitinglist
}

type DidNotChangeDesiredRoomTypesBecauseThereWasNoChange struct {
	DesiredRoomTypes []RoomType `json:"desiredRoomTypes"`
	MemberID         string     `json:"memberId"`
}

func (DidNotChangeDesiredRoomTypesBecauseThereWasNoChange) EventKind() string {
	return KindDidNotChangeDesiredRoomTypesBecauseThereWasNoChange
}
