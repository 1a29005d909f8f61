package profiles

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/relaychat/relaychat-server/internal/store"
	"github.com/relaychat/relaychat-server/internal/utils"
)

// Common errors for profile operations.
var (
	ErrNameRequired    = errors.New("name required")
	ErrProfileNotFound = errors.New("user not found")
)

// Notifier receives profile-change notifications for all connected sessions.
type Notifier interface {
	NotifyProfileUpdated(store.Profile)
}

// Service validates and applies profile operations against the store.
type Service struct {
	store store.Store
	hub   Notifier
	log   *zerolog.Logger
}

// New creates a profile service.
func New(st store.Store, hub Notifier, logger *zerolog.Logger) *Service {
	return &Service{
		store: st,
		hub:   hub,
		log:   logger,
	}
}

// Register creates a profile with a fresh id. avatar may be empty, in which
// case the profile has none.
func (s *Service) Register(name, avatar string) (store.Profile, error) {
	if name == "" {
		return store.Profile{}, ErrNameRequired
	}

	p := store.Profile{ID: utils.NewID(), Name: name}
	if avatar != "" {
		p.Avatar = &avatar
	}
	s.store.Create(p)

	s.log.Info().Str("user_id", p.ID).Str("name", p.Name).Msg("profile registered")
	return p, nil
}

// Update applies a partial update to the profile for id and notifies every
// connected session. An empty name leaves the name unchanged. A nil avatar
// means "not provided"; a pointer to the empty string clears the avatar; any
// other value replaces it.
func (s *Service) Update(id, name string, avatar *string) (store.Profile, error) {
	p, ok := s.store.Mutate(id, func(p *store.Profile) {
		if name != "" {
			p.Name = name
		}
		if avatar != nil {
			if *avatar == "" {
				p.Avatar = nil
			} else {
				v := *avatar
				p.Avatar = &v
			}
		}
	})
	if !ok {
		return store.Profile{}, ErrProfileNotFound
	}

	s.hub.NotifyProfileUpdated(p)
	s.log.Info().Str("user_id", p.ID).Msg("profile updated")
	return p, nil
}

// List returns all registered profiles in arbitrary order.
func (s *Service) List() []store.Profile {
	return s.store.List()
}
