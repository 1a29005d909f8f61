package store

// Profile is a registered user's display identity. The ID is assigned at
// registration and never changes; Name and Avatar are mutable. A nil Avatar
// means the user has none, and it marshals as JSON null.
type Profile struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// Store holds registered profiles keyed by id. Profiles are never deleted;
// they live for the duration of the process. Implementations must be safe for
// concurrent use, and Mutate must apply its change atomically so no reader
// ever observes a half-applied profile.
type Store interface {
	// Create inserts a profile under its id.
	Create(p Profile)
	// Get returns the profile for id, or false if unknown.
	Get(id string) (Profile, bool)
	// Mutate applies fn to the profile for id under the store's lock and
	// returns the updated copy, or false if the id is unknown.
	Mutate(id string, fn func(*Profile)) (Profile, bool)
	// List returns a snapshot of all profiles in arbitrary order.
	List() []Profile
	// Len reports the number of stored profiles.
	Len() int
}
