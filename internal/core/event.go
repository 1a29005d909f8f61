package core

import "github.com/relaychat/relaychat-server/internal/store"

// EventKind is a notification the hub emits to sessions.
type EventKind int

const (
	// EventInit delivers the current profile list to a freshly joined session.
	EventInit EventKind = iota
	// EventSystem notifies room members about a join.
	EventSystem
	// EventMessage delivers a relayed chat message to room members.
	EventMessage
	// EventProfileUpdated notifies every connected session that a profile changed.
	EventProfileUpdated
	// EventError reports a protocol-level error to a single session.
	EventError
)

// Event is sent to sessions to describe what happened.
type Event struct {
	Kind    EventKind
	Users   []store.Profile // EventInit
	Text    string          // EventSystem
	Message Message         // EventMessage
	Profile store.Profile   // EventProfileUpdated
	Error   *CoreError      // EventError
}
