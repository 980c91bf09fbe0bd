package game

import (
	"log/slog"

	"github.com/pixil98/go-workshop/internal/geom"
)

// Spot is a fixed waiting position a visitor can occupy while it waits for a
// delivery. Spots are created once at spawner construction and only their
// occupied flag ever changes.
type Spot struct {
	ID       int
	Position geom.Point3

	occupied bool
}

// Occupied reports whether a visitor currently claims this spot.
func (s *Spot) Occupied() bool {
	return s.occupied
}

// SpotRegistry tracks which waiting positions are free. It is the only state
// shared between visitors, so occupy/free enforce their invariant strictly:
// a double occupy or double free is logged and refused rather than applied.
//
// The registry is not goroutine-safe; all access is serialized through the
// spawner's lock.
type SpotRegistry struct {
	spots []*Spot
}

func NewSpotRegistry(positions []geom.Point3) *SpotRegistry {
	spots := make([]*Spot, len(positions))
	for i, p := range positions {
		spots[i] = &Spot{ID: i, Position: p}
	}
	return &SpotRegistry{spots: spots}
}

// FreeSpot returns the first vacant spot in id order, or false if every spot
// is taken. The id-order tie break keeps admission deterministic.
func (r *SpotRegistry) FreeSpot() (*Spot, bool) {
	for _, s := range r.spots {
		if !s.occupied {
			return s, true
		}
	}
	return nil, false
}

// Occupy claims a spot. Claiming an already-claimed spot fails closed: the
// registry keeps its current state and the caller must not spawn into it.
func (r *SpotRegistry) Occupy(id int) error {
	s, err := r.get(id)
	if err != nil {
		return err
	}
	if s.occupied {
		slog.Warn("refusing to occupy a taken spot", "spot", id)
		return ErrSpotOccupied
	}
	s.occupied = true
	return nil
}

// Free releases a spot. Releasing a vacant spot is an anomaly worth logging
// (it means two exit paths raced), but leaves the registry consistent.
func (r *SpotRegistry) Free(id int) error {
	s, err := r.get(id)
	if err != nil {
		return err
	}
	if !s.occupied {
		slog.Warn("freeing a spot that is already vacant", "spot", id)
		return ErrSpotVacant
	}
	s.occupied = false
	return nil
}

// FreeAll force-releases every spot. Used by restart and hard-reset paths.
func (r *SpotRegistry) FreeAll() {
	for _, s := range r.spots {
		s.occupied = false
	}
}

// Get returns the spot with the given id, or nil.
func (r *SpotRegistry) Get(id int) *Spot {
	s, err := r.get(id)
	if err != nil {
		return nil
	}
	return s
}

// All returns the spots in id order.
func (r *SpotRegistry) All() []*Spot {
	return r.spots
}

func (r *SpotRegistry) get(id int) (*Spot, error) {
	if id < 0 || id >= len(r.spots) {
		slog.Warn("spot lookup out of range", "spot", id)
		return nil, ErrNoSuchSpot
	}
	return r.spots[id], nil
}
