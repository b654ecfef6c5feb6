// Package conference folds the socrates stream into the conference
// configuration: room quotas and the registration window. Quota changes are
// events like everything else and apply retroactively to future commands
// only.
package conference

import (
	"github.com/softwerkskammer/Agora-sub003/core/events"
	"github.com/softwerkskammer/Agora-sub003/core/registration"
)

// WriteModel is the configuration state used to validate commands and to
// decide room fullness.
type WriteModel struct {
	created          bool
	url              string
	quotas           map[events.RoomType]int
	registrationOpen bool
}

func NewWriteModel(evts []any) *WriteModel {
	m := &WriteModel{quotas: map[events.RoomType]int{}}
	for _, ev := range evts {
		m.apply(ev)
	}
	return m
}

func (m *WriteModel) apply(ev any) {
	switch e := ev.(type) {
	case *events.ConferenceWasCreated:
		m.created = true
		m.url = e.URL
	case *events.RoomQuotaWasSet:
		m.quotas[e.RoomType] = e.Quota
	case *events.RegistrationWindowWasOpened:
		m.registrationOpen = true
	case *events.RegistrationWindowWasClosed:
		m.registrationOpen = false
	}
}

func (m *WriteModel) IsCreated() bool { return m.created }
func (m *WriteModel) URL() string     { return m.url }

// QuotaFor returns the configured capacity of a room type. Unconfigured room
// types have quota 0, i.e. they are full for everyone.
func (m *WriteModel) QuotaFor(roomType events.RoomType) int {
	return m.quotas[roomType]
}

func (m *WriteModel) IsRegistrationOpen() bool { return m.registrationOpen }

// IsFull combines the configured quota with the current occupancy from the
// registration read model.
func (m *WriteModel) IsFull(roomType events.RoomType, reg *registration.ReadModel) bool {
	return reg.IsFull(roomType, m.QuotaFor(roomType))
}

// Processor validates configuration intents and emits quota/window events.
type Processor struct {
	model *WriteModel
}

func NewProcessor(model *WriteModel) *Processor {
	return &Processor{model: model}
}

func (p *Processor) CreateConference(url string) events.Event {
	return events.ConferenceWasCreated{URL: url}
}

func (p *Processor) SetRoomQuota(roomType events.RoomType, quota int) events.Event {
	if quota < 0 {
		return events.DidNotSetRoomQuotaBecauseItWasNegative{RoomType: roomType, Quota: quota}
	}
	return events.RoomQuotaWasSet{RoomType: roomType, Quota: quota}
}

func (p *Processor) OpenRegistration() events.Event {
	return events.RegistrationWindowWasOpened{}
}

func (p *Processor) CloseRegistration() events.Event {
	return events.RegistrationWindowWasClosed{}
}

// RoomOption is the per-room-type decision input for the UI layer: whether to
// offer direct registration or the waitinglist.
type RoomOption struct {
	RoomType         events.RoomType `json:"roomType"`
	Quota            int             `json:"quota"`
	Full             bool            `json:"full"`
	RegistrationOpen bool            `json:"registrationOpen"`
}

// AllRoomOptions is a pure read-side computation, not a command: it combines
// the configuration with registration occupancy for every known room type.
func AllRoomOptions(conf *WriteModel, reg *registration.ReadModel) []RoomOption {
	out := make([]RoomOption, 0, len(events.AllRoomTypes()))
	for _, rt := range events.AllRoomTypes() {
		out = append(out, RoomOption{
			RoomType:         rt,
			Quota:            conf.QuotaFor(rt),
			Full:             conf.IsFull(rt, reg),
			RegistrationOpen: conf.IsRegistrationOpen() && !conf.IsFull(rt, reg),
		})
	}
	return out
}
