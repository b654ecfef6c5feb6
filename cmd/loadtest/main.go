// Command loadtest hammers the registration engine with concurrent
// sessions racing for a small room quota and verifies that optimistic
// concurrency never lets the room overbook.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	natsadapter "github.com/softwerkskammer/Agora-sub003/adapters/nats"
	"github.com/softwerkskammer/Agora-sub003/core/es"
	"github.com/softwerkskammer/Agora-sub003/core/events"
	"github.com/softwerkskammer/Agora-sub003/core/service"
)

// NOTE: run nats: docker run --net=host nats:latest -js

type config struct {
	Sessions int    `env:"N" envDefault:"200"`
	Quota    int    `env:"QUOTA" envDefault:"25"`
	Backend  string `env:"BACKEND" envDefault:"memory"`
	NatsURL  string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

func main() {
	var cfg config
	checkErr(env.Parse(&cfg))

	level := slog.LevelWarn
	_ = level.UnmarshalText([]byte(cfg.LogLevel))
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	fmt.Printf("Backend:  %s\n", cfg.Backend)
	fmt.Printf("Sessions: %d\n", cfg.Sessions)
	fmt.Printf("Quota:    %d\n", cfg.Quota)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	var store es.EventStore
	switch cfg.Backend {
	case "nats":
		natsStore, err := natsadapter.NewEventStore(natsadapter.EventStoreConfig{
			Connect: natsadapter.ConnectURL(cfg.NatsURL),
			Log:     log,
		})
		checkErr(err)
		defer natsStore.Close()
		store = natsStore
	default:
		store = es.NewInMemoryStore(es.WithStoreLog(log))
	}

	svc := service.New(store, service.WithLog(log))

	conferenceURL := fmt.Sprintf("loadtest-%s", uuid.NewString()[:8])
	checkErr(svc.CreateConference(ctx, conferenceURL))
	rejection, err := svc.SetRoomQuota(ctx, conferenceURL, events.RoomSingle, cfg.Quota)
	checkErr(err)
	checkNoRejection(rejection)
	checkErr(svc.OpenRegistration(ctx, conferenceURL))

	// === START ===

	startAt := time.Now()

	var registered, rejected, failed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < cfg.Sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			sessionID := uuid.NewString()
			memberID := fmt.Sprintf("member-%d", i)

			rej, err := svc.IssueReservation(ctx, conferenceURL, events.RoomSingle, 3, sessionID, memberID)
			if err != nil {
				failed.Add(1)
				return
			}
			if rej != nil {
				rejected.Add(1)
				return
			}

			rej, err = svc.RegisterParticipant(ctx, conferenceURL, events.RoomSingle, 3, sessionID, memberID)
			switch {
			case err != nil:
				failed.Add(1)
			case rej != nil:
				rejected.Add(1)
			default:
				registered.Add(1)
			}
		}(i)
	}
	wg.Wait()

	elapsed := time.Since(startAt)

	view, err := svc.View(ctx, conferenceURL)
	checkErr(err)
	occupancy := view.Registration.ParticipantCountFor(events.RoomSingle)

	fmt.Println("==================================")
	fmt.Printf("Elapsed:    %s\n", elapsed)
	fmt.Printf("Registered: %d\n", registered.Load())
	fmt.Printf("Rejected:   %d\n", rejected.Load())
	fmt.Printf("Failed:     %d\n", failed.Load())
	fmt.Printf("Occupancy:  %d\n", occupancy)

	if occupancy > cfg.Quota {
		fmt.Printf("FAIL: occupancy %d exceeds quota %d\n", occupancy, cfg.Quota)
		os.Exit(1)
	}
	if int(registered.Load()) != occupancy {
		fmt.Printf("FAIL: registered count %d does not match occupancy %d\n", registered.Load(), occupancy)
		os.Exit(1)
	}
	fmt.Println("OK: quota held under contention")
}

func checkErr(err error) {
	if err != nil {
		panic(err)
	}
}

func checkNoRejection(r *service.Rejection) {
	if r != nil {
		panic(fmt.Sprintf("unexpected rejection: %+v", *r))
	}
}
