package events

import "github.com/softwerkskammer/Agora-sub003/core/es"

// RegisterAll wires every catalog event into the registry so persisted
// envelopes can be decoded. The set is closed: an envelope whose kind is not
// covered here is a corrupt log, surfaced as es.ErrUnknownEventKind.
func RegisterAll(r es.Registrar) {
	es.RegisterEvents(r,
		// registration stream
		es.Event[ReservationWasIssued](),
		es.Event[DidNotIssueReservationForAlreadyReservedSession](),
		es.Event[DidNotIssueReservationForFullResource](),
		es.Event[ParticipantWasRegistered](),
		es.Event[DidNotRegisterParticipantASecondTime](),
		es.Event[DidNotRegisterParticipantWithExpiredOrMissingReservation](),
		es.Event[WaitinglistReservationWasIssued](),
		es.Event[DidNotIssueWaitinglistReservationForAlreadyReservedSession](),
		es.Event[WaitinglistParticipantWasRegistered](),
		es.Event[DidNotRegisterWaitinglistParticipantASecondTime](),
		es.Event[DidNotRegisterWaitinglistParticipantWithExpiredOrMissingReservation](),
		es.Event[RegisteredParticipantFromWaitinglist](),
		es.Event[DidNotRegisterParticipantFromWaitinglistASecondTime](),
		es.Event[DidNotRegisterParticipantFromWaitinglistForFullResource](),
		es.Event[DidNotRegisterParticipantFromWaitinglistBecauseTheyWereNotOnWaitinglist](),
		es.Event[ParticipantWasRemoved](),
		es.Event[DidNotRemoveParticipantBecauseTheyAreNotRegistered](),
		es.Event[DidNotRemoveParticipantBecauseTheyAreNotRegisteredForThisRoomType](),
		es.Event[WaitinglistParticipantWasRemoved](),
		es.Event[DidNotRemoveWaitinglistParticipantBecauseTheyAreNotRegistered](),
		es.Event[RoomTypeWasChanged](),
		es.Event[DidNotChangeRoomTypeForNonParticipant](),
		es.Event[DurationWasChanged](),
		es.Event[DidNotChangeDurationForNonParticipant](),
		es.Event[DesiredRoomTypesWereChanged](),
		es.Event[DidNotChangeDesiredRoomTypesBecauseNoRoomTypesWereSelected](),
		es.Event[DidNotChangeDesiredRoomTypesBecauseParticipantIsNotOnWaitinglist](),
		es.Event[DidNotChangeDesiredRoomTypesBecauseThereWasNoChange](),

		// socrates stream
		es.Event[ConferenceWasCreated](),
		es.Event[RoomQuotaWasSet](),
		es.Event[DidNotSetRoomQuotaBecauseItWasNegative](),
		es.Event[RegistrationWindowWasOpened](),
		es.Event[RegistrationWindowWasClosed](),

		// rooms stream
		es.Event[RoomPairWasAdded](),
		es.Event[RoomPairWasRemoved](),
		es.Event[DidNotAddRoomPairBecauseMembersAreIdentical](),
	)
}
