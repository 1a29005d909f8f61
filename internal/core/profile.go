package core

import "github.com/relaychat/relaychat-server/internal/store"

const (
	// AnonymousName is the display name used when a message's claimed
	// profile id cannot be resolved.
	AnonymousName = "Anonymous"
	// PlaceholderName is the display name used in join notifications when
	// the joiner has no resolvable profile.
	PlaceholderName = "A user"
)

// AnonymousProfile returns the fixed fallback author identity.
func AnonymousProfile() store.Profile {
	return store.Profile{Name: AnonymousName}
}

// ResolveAuthor maps an optional profile id to the profile it names, falling
// back to the anonymous identity. Total over all inputs: empty ids and
// unknown ids never fail.
func ResolveAuthor(st store.Store, id string) store.Profile {
	if id != "" {
		if p, ok := st.Get(id); ok {
			return p
		}
	}
	return AnonymousProfile()
}
