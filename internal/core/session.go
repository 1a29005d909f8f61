package core

// Session is one live connection's tracked state. It exists whether or not
// the connection ever binds a profile or enters the room.
type Session struct {
	// ConnID is unique per connection, assigned at connect time.
	ConnID string
	// ProfileID optionally references a registered profile. Set once at
	// join time, never re-bound. The reference is not validated here;
	// resolution happens at message time with an anonymous fallback.
	ProfileID string
	// Events is drained by the session's transport write loop. Sends are
	// non-blocking: a slow or gone consumer misses events rather than
	// stalling the hub.
	Events chan *Event
}
