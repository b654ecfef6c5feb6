package service

import (
	"context"
	"log/slog"

	"github.com/softwerkskammer/Agora-sub003/core/events"
)

// Notification is the payload handed to the notification sink after a
// durable append. The sink (mail composer, UI status channel) decides what
// to do per event kind; the engine fires and forgets.
type Notification struct {
	ConferenceURL    string            `json:"conferenceUrl"`
	EventKind        string            `json:"eventKind"`
	MemberID         string            `json:"memberId,omitempty"`
	RoomType         events.RoomType   `json:"roomType,omitempty"`
	DesiredRoomTypes []events.RoomType `json:"desiredRoomTypes,omitempty"`
	Duration         int               `json:"duration,omitempty"`
}

// NotificationFor extracts the sink-relevant fields of an outcome event.
func NotificationFor(conferenceURL string, ev events.Event) Notification {
	n := Notification{ConferenceURL: conferenceURL, EventKind: ev.EventKind()}
	switch e := ev.(type) {
	case events.ReservationWasIssued:
		n.MemberID, n.RoomType, n.Duration = e.MemberID, e.RoomType, e.Duration
	case events.ParticipantWasRegistered:
		n.MemberID, n.RoomType, n.Duration = e.MemberID, e.RoomType, e.Duration
	case events.WaitinglistReservationWasIssued:
		n.MemberID, n.DesiredRoomTypes = e.MemberID, e.DesiredRoomTypes
	case events.WaitinglistParticipantWasRegistered:
		n.MemberID, n.DesiredRoomTypes = e.MemberID, e.DesiredRoomTypes
	case events.RegisteredParticipantFromWaitinglist:
		n.MemberID, n.RoomType, n.Duration = e.MemberID, e.RoomType, e.Duration
	case events.ParticipantWasRemoved:
		n.MemberID, n.RoomType = e.MemberID, e.RoomType
	case events.WaitinglistParticipantWasRemoved:
		n.MemberID, n.DesiredRoomTypes = e.MemberID, e.DesiredRoomTypes
	case events.RoomTypeWasChanged:
		n.MemberID, n.RoomType, n.Duration = e.MemberID, e.RoomType, e.Duration
	case events.DurationWasChanged:
		n.MemberID, n.RoomType, n.Duration = e.MemberID, e.RoomType, e.Duration
	case events.DesiredRoomTypesWereChanged:
		n.MemberID, n.DesiredRoomTypes = e.MemberID, e.DesiredRoomTypes
	case events.RoomPairWasAdded:
		n.RoomType = e.RoomType
	case events.RoomPairWasRemoved:
		n.RoomType = e.RoomType
	}
	return n
}

// Notifier is the collaborator boundary for mail and UI status messages.
// Called at most once per successful command, only after a conflict-free
// append; a command that retries and ultimately wins notifies exactly once,
// for the final winning attempt.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}

func NewNopNotifier() Notifier { return nopNotifier{} }

// LogNotifier writes notifications to the log, for dev setups without a
// mail/NATS sink.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(slog.String("notifier", "log"))}
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) {
	l.log.Info(
		"notification",
		slog.String("conference", n.ConferenceURL),
		slog.String("kind", n.EventKind),
		slog.String("member", n.MemberID),
	)
}

var _ Notifier = (*LogNotifier)(nil)
