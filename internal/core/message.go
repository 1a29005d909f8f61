package core

import (
	"time"

	"github.com/relaychat/relaychat-server/internal/store"
)

// Message is a relayed chat message. It is transient: constructed by the hub
// at emission time, fanned out, and never stored. Author is a snapshot of the
// sender's profile at the moment of sending, so later profile edits do not
// rewrite already-delivered messages.
type Message struct {
	ID     string
	Author store.Profile
	Text   string
	SentAt time.Time
}
