package service

import (
	"context"
	"time"

	"github.com/softwerkskammer/Agora-sub003/core/conference"
	"github.com/softwerkskammer/Agora-sub003/core/events"
	"github.com/softwerkskammer/Agora-sub003/core/registration"
	"github.com/softwerkskammer/Agora-sub003/core/rooms"
)

// View bundles the read-side projections of one conference at one store
// version. The UI layer consumes query methods only and never mutates
// anything through a View.
type View struct {
	Version      int64
	Registration *registration.ReadModel
	Conference   *conference.WriteModel
	Rooms        *rooms.ReadModel

	regWrite *registration.WriteModel
}

// View fetches the conference document and folds all read models. The
// decoded streams are memoized per (conference, version); the fold itself is
// redone so expiry checks see the current clock.
func (s *Service) View(ctx context.Context, conferenceURL string) (*View, error) {
	doc, err := s.fetchOrNew(ctx, conferenceURL)
	if err != nil {
		return nil, err
	}
	m, err := s.buildModels(doc)
	if err != nil {
		return nil, err
	}
	return &View{
		Version:      doc.Version,
		Registration: m.regRead,
		Conference:   m.conf,
		Rooms:        m.roomsRead,
		regWrite:     m.regWrite,
	}, nil
}

// AllRoomOptions answers the register-vs-waitlist presentation question per
// room type.
func (v *View) AllRoomOptions() []conference.RoomOption {
	return conference.AllRoomOptions(v.Conference, v.Registration)
}

// ReservationExpiration reports when the session's live reservation runs
// out, for the countdown shown during registration. Absent when the session
// holds no valid reservation.
func (v *View) ReservationExpiration(sessionID string) (time.Time, bool) {
	return v.regWrite.ReservationExpiration(sessionID)
}

// ParticipantsWithoutRoomIn lists members registered for a shared room type
// that are not paired yet.
func (v *View) ParticipantsWithoutRoomIn(roomType events.RoomType) []string {
	registered := make([]string, 0)
	for _, p := range v.Registration.ParticipantsIn(roomType) {
		registered = append(registered, p.MemberID)
	}
	return v.Rooms.ParticipantsWithoutRoomIn(roomType, registered)
}
