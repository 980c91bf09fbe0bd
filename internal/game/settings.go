package game

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-workshop/internal/geom"
)

const (
	DefaultSpawnInterval     = 10 * time.Second
	DefaultWalkSpeed         = 1.2 // meters per second
	DefaultWaitTime          = 20 * time.Second
	DefaultWaitTimeVariation = 5 * time.Second
	DefaultWinThreshold      = 5
	DefaultLoseThreshold     = 5
)

// Settings holds the gameplay tunables. Everything the scene logic treats as
// a constant lives here so deployments can retune without a rebuild.
type Settings struct {
	// SpawnInterval is the cadence at which the spawner admits new visitors.
	SpawnInterval time.Duration

	// WalkSpeed is the visitor movement speed in meters per second, used for
	// both the walk-in and the walk-out.
	WalkSpeed float64

	// WaitTime is the base patience window; each visitor's actual deadline is
	// WaitTime plus a uniform roll in [-WaitTimeVariation, +WaitTimeVariation].
	WaitTime          time.Duration
	WaitTimeVariation time.Duration

	// WinThreshold and LoseThreshold end the session when the good or bad
	// delivery count reaches them.
	WinThreshold  int
	LoseThreshold int

	// Origins are the two fixed points visitors enter from and leave to.
	// Each visitor uses whichever origin is closer to its assigned spot.
	Origins [2]geom.Point3

	// Spots are the waiting positions, in admission order.
	Spots []geom.Point3

	// ExpectedItems maps a visitor race to the item type it wants delivered.
	ExpectedItems map[Race]ItemType
}

// DefaultSettings returns the tunables as observed in the shipped scene:
// three spots along the counter, origins at the two street entrances.
func DefaultSettings() Settings {
	return Settings{
		SpawnInterval:     DefaultSpawnInterval,
		WalkSpeed:         DefaultWalkSpeed,
		WaitTime:          DefaultWaitTime,
		WaitTimeVariation: DefaultWaitTimeVariation,
		WinThreshold:      DefaultWinThreshold,
		LoseThreshold:     DefaultLoseThreshold,
		Origins: [2]geom.Point3{
			{X: -12, Y: 0, Z: 6},
			{X: 12, Y: 0, Z: 6},
		},
		Spots: []geom.Point3{
			{X: -2, Y: 0, Z: -4},
			{X: 0, Y: 0, Z: -4},
			{X: 2, Y: 0, Z: -4},
		},
		ExpectedItems: map[Race]ItemType{
			RaceElf: "bread",
			RaceOrc: "mead",
		},
	}
}

// Validate satisfies storage.ValidatingSpec.
func (s *Settings) Validate() error {
	el := errors.NewErrorList()

	if s.SpawnInterval <= 0 {
		el.Add(fmt.Errorf("spawn interval must be positive"))
	}
	if s.WalkSpeed <= 0 {
		el.Add(fmt.Errorf("walk speed must be positive"))
	}
	if s.WaitTime <= 0 {
		el.Add(fmt.Errorf("wait time must be positive"))
	}
	if s.WaitTimeVariation < 0 {
		el.Add(fmt.Errorf("wait time variation must not be negative"))
	}
	if s.WaitTimeVariation >= s.WaitTime {
		el.Add(fmt.Errorf("wait time variation must be less than the wait time"))
	}
	if s.WinThreshold < 1 {
		el.Add(fmt.Errorf("win threshold must be at least 1"))
	}
	if s.LoseThreshold < 1 {
		el.Add(fmt.Errorf("lose threshold must be at least 1"))
	}
	if len(s.Spots) < 1 {
		el.Add(fmt.Errorf("at least one spot is required"))
	}
	for _, race := range []Race{RaceElf, RaceOrc} {
		if _, ok := s.ExpectedItems[race]; !ok {
			el.Add(fmt.Errorf("expected item for race %q is required", race))
		}
	}

	return el.Err()
}
