package core

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaychat/relaychat-server/internal/store"
	"github.com/relaychat/relaychat-server/internal/store/memory"
)

func newTestHub(t *testing.T) (*Hub, *Registry, store.Store) {
	t.Helper()

	logger := zerolog.Nop()
	st := memory.New()
	registry := NewRegistry(32, &logger)
	hub := NewHub(registry, st, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return hub, registry, st
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}
