package core

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/relaychat/relaychat-server/internal/utils"
)

// Registry tracks live sessions and their membership in the single broadcast
// room. Connects and disconnects arrive from independent connection handlers,
// so the maps are guarded by a mutex; Members and Sessions hand out snapshot
// slices so fan-out never iterates a live map.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	room     map[string]*Session
	buffer   int
	log      *zerolog.Logger
}

// NewRegistry constructs an empty registry. buffer sizes each session's
// event channel.
func NewRegistry(buffer int, logger *zerolog.Logger) *Registry {
	if buffer <= 0 {
		buffer = 16
	}
	return &Registry{
		sessions: make(map[string]*Session),
		room:     make(map[string]*Session),
		buffer:   buffer,
		log:      logger,
	}
}

// Connect allocates a new session with no room membership and no bound
// profile.
func (r *Registry) Connect() *Session {
	s := &Session{
		ConnID: utils.NewID(),
		Events: make(chan *Event, r.buffer),
	}

	r.mu.Lock()
	r.sessions[s.ConnID] = s
	r.mu.Unlock()

	r.log.Debug().Str("conn_id", s.ConnID).Msg("session connected")
	return s
}

// Join binds the optional profile id to the session and adds it to the room.
// The binding is set once; later joins keep the first id.
func (r *Registry) Join(s *Session, profileID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ConnID]; !ok {
		// Already disconnected; nothing to join.
		return
	}
	if s.ProfileID == "" {
		s.ProfileID = profileID
	}
	r.room[s.ConnID] = s
}

// Disconnect removes the session from the registry and the room. Idempotent:
// a second call, or a call for a session never registered, is a no-op.
func (r *Registry) Disconnect(s *Session) {
	if s == nil {
		return
	}

	r.mu.Lock()
	_, known := r.sessions[s.ConnID]
	delete(r.sessions, s.ConnID)
	delete(r.room, s.ConnID)
	r.mu.Unlock()

	if known {
		r.log.Debug().Str("conn_id", s.ConnID).Msg("session disconnected")
	}
}

// Members returns a snapshot of the sessions currently in the room.
func (r *Registry) Members() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*Session, 0, len(r.room))
	for _, s := range r.room {
		members = append(members, s)
	}
	return members
}

// Sessions returns a snapshot of every live session, in or out of the room.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	return all
}

// InRoom reports whether the session currently has room membership.
func (r *Registry) InRoom(s *Session) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.room[s.ConnID]
	return ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
