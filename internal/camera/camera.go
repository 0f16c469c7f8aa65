package camera

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"librarydesk/internal/library"
)

// Status is an opaque label fixed when the unit is registered. Nothing
// re-evaluates it afterwards; the units are mock endpoints, not live feeds.
type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
)

// Camera is a registered surveillance unit.
type Camera struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   Status `json:"status"`
	LastSeen string `json:"last_seen"`
}

// Counts is the online/offline tally, derived on read.
type Counts struct {
	Online  int `json:"online"`
	Offline int `json:"offline"`
}

// Roster is the in-memory camera collection, insertion order preserved.
type Roster struct {
	mu      sync.Mutex
	cameras []Camera
	now     func() time.Time
}

// NewRoster creates a roster pre-populated with seed cameras.
func NewRoster(seed []Camera) *Roster {
	r := &Roster{now: time.Now}
	r.cameras = append(r.cameras, seed...)
	return r
}

// SeedCameras returns the camera units registered at startup.
func SeedCameras() []Camera {
	return []Camera{
		{ID: "cam-1", Name: "Front Entry", Location: "Entrance", Status: StatusOnline, LastSeen: "2024-05-20 09:00"},
		{ID: "cam-2", Name: "Quiet Zone 1", Location: "AC Room", Status: StatusOnline, LastSeen: "2024-05-20 09:05"},
		{ID: "cam-3", Name: "Hallway North", Location: "Non-AC Room", Status: StatusOffline, LastSeen: "2024-05-19 22:00"},
	}
}

// Add registers a new unit with a generated id, status Online and LastSeen
// set to the current time. Duplicate names and locations are permitted; two
// units can share a human label. Fails with ValidationError on a blank name.
func (r *Roster) Add(name, location string) (Camera, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Camera{}, library.ValidationError{Field: "name", Reason: "required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	cam := Camera{
		ID:       "cam-" + uuid.NewString(),
		Name:     name,
		Location: strings.TrimSpace(location),
		Status:   StatusOnline,
		LastSeen: r.now().Format(library.TimeLayout),
	}
	r.cameras = append(r.cameras, cam)
	return cam, nil
}

// Remove deletes the unit with the given id. Removing an absent id is a
// no-op, not an error: a repeated command must not surface as a failure.
func (r *Roster) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cam := range r.cameras {
		if cam.ID == id {
			r.cameras = append(r.cameras[:i], r.cameras[i+1:]...)
			return
		}
	}
}

// List returns a copy of the collection in insertion order.
func (r *Roster) List() []Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Camera, len(r.cameras))
	copy(out, r.cameras)
	return out
}

// CountByStatus tallies online and offline units.
func (r *Roster) CountByStatus() Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	var c Counts
	for _, cam := range r.cameras {
		if cam.Status == StatusOnline {
			c.Online++
		} else {
			c.Offline++
		}
	}
	return c
}
