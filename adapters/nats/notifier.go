package nats

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	natsgo "github.com/nats-io/nats.go"

	"github.com/softwerkskammer/Agora-sub003/core/service"
)

const defaultSubjectPrefix = "agora.registration"

type NotifierConfig struct {
	Connect       Connector
	Log           *slog.Logger
	SubjectPrefix string
}

// Notifier publishes command outcomes to NATS subjects so mail composers
// and UI status channels can subscribe. Publishing is fire-and-forget:
// a failed publish is logged, never retried and never fails the command.
type Notifier struct {
	nc            *natsgo.Conn
	closeNc       closeFunc
	log           *slog.Logger
	subjectPrefix string
}

func NewNotifier(cfg NotifierConfig) (*Notifier, error) {
	doConnect := cfg.Connect
	if doConnect == nil {
		doConnect = ConnectDefault()
	}
	nc, closeNc, err := doConnect()
	if err != nil {
		return nil, err
	}

	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	subjectPrefix := cfg.SubjectPrefix
	if subjectPrefix == "" {
		subjectPrefix = defaultSubjectPrefix
	}

	return &Notifier{
		nc:            nc,
		closeNc:       closeNc,
		log:           log.With(slog.String("notifier", "nats"), slog.String("prefix", subjectPrefix)),
		subjectPrefix: subjectPrefix,
	}, nil
}

func (n *Notifier) Close() {
	if n.closeNc != nil {
		n.closeNc()
	}
}

// SubjectFor maps an event kind onto a subject token, e.g.
// PARTICIPANT-WAS-REGISTERED -> agora.registration.participant_was_registered.
func (n *Notifier) SubjectFor(eventKind string) string {
	token := strings.ToLower(strings.ReplaceAll(eventKind, "-", "_"))
	return n.subjectPrefix + "." + token
}

func (n *Notifier) Notify(_ context.Context, notification service.Notification) {
	data, err := json.Marshal(notification)
	if err != nil {
		n.log.Error("failed to encode notification", slog.Any("error", err))
		return
	}
	subject := n.SubjectFor(notification.EventKind)
	if err := n.nc.Publish(subject, data); err != nil {
		n.log.Error("failed to publish notification", slog.String("subject", subject), slog.Any("error", err))
	}
}

var _ service.Notifier = (*Notifier)(nil)
