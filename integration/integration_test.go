package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softwerkskammer/Agora-sub003/core/es"
	"github.com/softwerkskammer/Agora-sub003/core/events"
	"github.com/softwerkskammer/Agora-sub003/core/service"
)

// The full conference lifecycle against a real store: setup, a rush on a
// small room, the waitinglist fallback, promotion and room pairing.
func TestConferenceLifecycle(t *testing.T) {
	ctx := context.Background()

	var now = time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	svc := service.New(es.NewInMemoryStore(), service.WithClock(clock))
	const conf = "socrates-2026"

	// Setup.
	require.NoError(t, svc.CreateConference(ctx, conf))
	rej, err := svc.SetRoomQuota(ctx, conf, events.RoomSingle, 2)
	require.NoError(t, err)
	require.Nil(t, rej)
	rej, err = svc.SetRoomQuota(ctx, conf, events.RoomBedInDouble, 4)
	require.NoError(t, err)
	require.Nil(t, rej)
	require.NoError(t, svc.OpenRegistration(ctx, conf))

	// Ten sessions rush the two single rooms.
	var winners []string
	for i := 0; i < 10; i++ {
		session := fmt.Sprintf("session-%d", i)
		member := fmt.Sprintf("member-%d", i)
		rej, err := svc.IssueReservation(ctx, conf, events.RoomSingle, 3, session, member)
		require.NoError(t, err)
		if rej == nil {
			winners = append(winners, member)
			rej, err = svc.RegisterParticipant(ctx, conf, events.RoomSingle, 3, session, member)
			require.NoError(t, err)
			require.Nil(t, rej)
		} else {
			assert.Equal(t, "activities.full_resource", rej.BodyKey)

			// Losers fall back to the waitinglist.
			rej, err = svc.IssueWaitinglistReservation(ctx, conf, []events.RoomType{events.RoomSingle}, session, member)
			require.NoError(t, err)
			require.Nil(t, rej)
			rej, err = svc.RegisterWaitinglistParticipant(ctx, conf, []events.RoomType{events.RoomSingle}, session, member)
			require.NoError(t, err)
			require.Nil(t, rej)
		}
		advance(time.Second)
	}
	require.Len(t, winners, 2)

	view, err := svc.View(ctx, conf)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Registration.ParticipantCountFor(events.RoomSingle))
	waiting := view.Registration.WaitinglistParticipantsFor(events.RoomSingle)
	require.Len(t, waiting, 8)
	assert.Equal(t, "member-2", waiting[0].MemberID, "oldest join first")

	// A winner cancels; the admin promotes the head of the waitinglist
	// into the freed slot.
	rej, err = svc.RemoveParticipant(ctx, conf, events.RoomSingle, winners[0])
	require.NoError(t, err)
	require.Nil(t, rej)

	rej, err = svc.FromWaitinglistToParticipant(ctx, conf, events.RoomSingle, 3, waiting[0].MemberID)
	require.NoError(t, err)
	require.Nil(t, rej)

	view, err = svc.View(ctx, conf)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Registration.ParticipantCountFor(events.RoomSingle))
	assert.False(t, view.Registration.IsOnWaitinglist(waiting[0].MemberID))
	assert.Len(t, view.Registration.WaitinglistParticipantsFor(events.RoomSingle), 7)

	// Two members move into a shared room and get paired.
	for _, member := range []string{winners[1], waiting[0].MemberID} {
		rej, err = svc.MoveParticipantToNewRoomType(ctx, conf, events.RoomBedInDouble, member)
		require.NoError(t, err)
		require.Nil(t, rej)
	}
	rej, err = svc.AddRoomPair(ctx, conf, events.RoomBedInDouble, winners[1], waiting[0].MemberID)
	require.NoError(t, err)
	require.Nil(t, rej)

	view, err = svc.View(ctx, conf)
	require.NoError(t, err)
	assert.Empty(t, view.ParticipantsWithoutRoomIn(events.RoomBedInDouble))
	mate, ok := view.Rooms.RoommateFor(events.RoomBedInDouble, winners[1])
	require.True(t, ok)
	assert.Equal(t, waiting[0].MemberID, mate)

	// Closing the window flips every room option to waitinglist-only.
	require.NoError(t, svc.CloseRegistration(ctx, conf))
	view, err = svc.View(ctx, conf)
	require.NoError(t, err)
	for _, o := range view.AllRoomOptions() {
		assert.False(t, o.RegistrationOpen)
	}
}

// Replaying the same document through a fresh service yields the same view:
// the log is the single source of truth.
func TestRebuildFromLog(t *testing.T) {
	ctx := context.Background()
	store := es.NewInMemoryStore()
	const conf = "socrates-2026"

	svc := service.New(store)
	require.NoError(t, svc.CreateConference(ctx, conf))
	rej, err := svc.SetRoomQuota(ctx, conf, events.RoomSingle, 5)
	require.NoError(t, err)
	require.Nil(t, rej)
	rej, err = svc.IssueReservation(ctx, conf, events.RoomSingle, 2, "s1", "m1")
	require.NoError(t, err)
	require.Nil(t, rej)
	rej, err = svc.RegisterParticipant(ctx, conf, events.RoomSingle, 2, "s1", "m1")
	require.NoError(t, err)
	require.Nil(t, rej)

	fresh := service.New(store)
	view, err := fresh.View(ctx, conf)
	require.NoError(t, err)

	assert.True(t, view.Conference.IsCreated())
	assert.Equal(t, 5, view.Conference.QuotaFor(events.RoomSingle))
	assert.Equal(t, 1, view.Registration.ParticipantCountFor(events.RoomSingle))
}
