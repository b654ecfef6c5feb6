// Package events is the closed catalog of event kinds exchanged between the
// write models, command processors and read models. Events are pure data:
// immutable facts, appended to the conference event log and never edited.
//
// Every command produces exactly one of these events, success or named
// rejection, so the log doubles as an audit trail of accepted and rejected
// operations alike.
package events
