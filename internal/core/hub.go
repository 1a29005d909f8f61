package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/relaychat/relaychat-server/internal/store"
)

// Hub fans inbound session commands out to the room. A single Run goroutine
// consumes all commands, which makes it the ordering authority: two messages
// are never delivered in an order that differs between recipients, and each
// sender's messages arrive in emission order because every connection feeds
// the hub from one reader goroutine.
//
// The hub owns no state of its own. It relays over the registry's membership
// and reads the profile store to resolve authors.
type Hub struct {
	registry *Registry
	store    store.Store
	commands chan dispatch
	updates  chan store.Profile
	log      *zerolog.Logger
}

type dispatch struct {
	sess *Session
	cmd  Command
}

// NewHub creates a hub over the given registry and profile store.
func NewHub(registry *Registry, st store.Store, logger *zerolog.Logger) *Hub {
	return &Hub{
		registry: registry,
		store:    st,
		commands: make(chan dispatch, 64),
		updates:  make(chan store.Profile, 16),
		log:      logger,
	}
}

// Dispatch hands a session's command to the hub loop.
func (h *Hub) Dispatch(s *Session, cmd Command) {
	h.commands <- dispatch{sess: s, cmd: cmd}
}

// NotifyProfileUpdated pushes a changed profile to every connected session,
// whether or not it has joined the room.
func (h *Hub) NotifyProfileUpdated(p store.Profile) {
	h.updates <- p
}

// Run processes commands and profile updates until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case d := <-h.commands:
			switch d.cmd.Kind {
			case CommandJoin:
				h.handleJoin(d.sess, d.cmd.ProfileID)
			case CommandSendMessage:
				h.handleMessage(d.cmd.ProfileID, d.cmd.Text)
			}
		case p := <-h.updates:
			for _, s := range h.registry.Sessions() {
				send(s, &Event{Kind: EventProfileUpdated, Profile: p})
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleJoin admits the session into the room, sends it a snapshot of the
// current profiles, and tells everyone already there who arrived.
func (h *Hub) handleJoin(s *Session, profileID string) {
	h.registry.Join(s, profileID)

	send(s, &Event{Kind: EventInit, Users: h.store.List()})

	name := PlaceholderName
	if profileID != "" {
		if p, ok := h.store.Get(profileID); ok {
			name = p.Name
		}
	}
	notice := &Event{Kind: EventSystem, Text: fmt.Sprintf("%s joined", name)}
	for _, member := range h.registry.Members() {
		if member == s {
			continue
		}
		send(member, notice)
	}

	h.log.Info().Str("conn_id", s.ConnID).Str("user_id", profileID).Msg("session joined room")
}

// handleMessage resolves the claimed author, stamps the message, and delivers
// it to every room member including the sender.
func (h *Hub) handleMessage(profileID, text string) {
	msg := Message{
		ID:     uuid.NewString(),
		Author: ResolveAuthor(h.store, profileID),
		Text:   text,
		SentAt: time.Now(),
	}

	event := &Event{Kind: EventMessage, Message: msg}
	for _, member := range h.registry.Members() {
		send(member, event)
	}
}

// send delivers best-effort: a session whose buffer is full, or whose write
// loop is gone, misses the event rather than blocking the hub.
func send(s *Session, ev *Event) {
	select {
	case s.Events <- ev:
	default:
	}
}
