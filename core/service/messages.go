package service

import "github.com/softwerkskammer/Agora-sub003/core/events"

// Rejection is the UI-facing outcome of a domain rejection: two message
// catalog keys the excluded rendering layer resolves into a localized title
// and body. Technical failures are errors, never Rejections.
type Rejection struct {
	TitleKey string `json:"titleKey"`
	BodyKey  string `json:"bodyKey"`
}

const titleProblem = "message.title.problem"

// rejectionCatalog maps every rejection event kind onto its message keys.
// Success kinds are deliberately absent.
var rejectionCatalog = map[string]Rejection{
	events.KindDidNotIssueReservationForAlreadyReservedSession: {titleProblem, "activities.already_reserved"},
	events.KindDidNotIssueReservationForFullResource:           {titleProblem, "activities.full_resource"},
	events.KindDidNotRegisterParticipantASecondTime:            {titleProblem, "activities.already_registered"},
	events.KindDidNotRegisterParticipantWithExpiredOrMissingRes: {titleProblem, "activities.registration_timed_out"},

	events.KindDidNotIssueWaitinglistReservationForAlreadyReservedSession: {titleProblem, "activities.already_reserved"},
	events.KindDidNotRegisterWaitinglistParticipantASecondTime:            {titleProblem, "activities.already_registered"},
	events.KindDidNotRegisterWaitinglistParticipantWithExpiredOrMissingRes: {titleProblem, "activities.registration_timed_out"},

	events.KindDidNotRegisterParticipantFromWaitinglistASecondTime:              {titleProblem, "activities.already_registered"},
	events.KindDidNotRegisterParticipantFromWaitinglistForFullResource:          {titleProblem, "activities.full_resource"},
	events.KindDidNotRegisterParticipantFromWaitinglistBecauseTheyWereNotOnWaitinglist: {titleProblem, "activities.not_on_waitinglist"},

	events.KindDidNotRemoveParticipantBecauseTheyAreNotRegistered:                {titleProblem, "activities.not_registered"},
	events.KindDidNotRemoveParticipantBecauseTheyAreNotRegisteredForThisRoomType: {titleProblem, "activities.not_registered_for_this_room_type"},
	events.KindDidNotRemoveWaitinglistParticipantBecauseTheyAreNotRegistered:     {titleProblem, "activities.not_on_waitinglist"},

	events.KindDidNotChangeRoomTypeForNonParticipant: {titleProblem, "activities.not_registered"},
	events.KindDidNotChangeDurationForNonParticipant: {titleProblem, "activities.not_registered"},

	events.KindDidNotChangeDesiredRoomTypesBecauseNoRoomTypesWereSelected:       {titleProblem, "activities.no_room_types_selected"},
	events.KindDidNotChangeDesiredRoomTypesBecauseParticipantIsNotOnWaitinglist: {titleProblem, "activities.not_on_waitinglist"},
	events.KindDidNotChangeDesiredRoomTypesBecauseThereWasNoChange:              {titleProblem, "activities.no_change"},

	events.KindDidNotSetRoomQuotaBecauseItWasNegative: {titleProblem, "activities.quota_must_not_be_negative"},

	events.KindDidNotAddRoomPairBecauseMembersAreIdentical: {titleProblem, "rooms.cannot_pair_with_self"},
}

// RejectionFor maps an outcome event onto its UI rejection. nil means
// success.
func RejectionFor(ev events.Event) *Rejection {
	if ev == nil {
		return nil
	}
	if r, ok := rejectionCatalog[ev.EventKind()]; ok {
		return &r
	}
	return nil
}
