package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-workshop/internal/game"
	"github.com/pixil98/go-workshop/internal/geom"
)

// GameConfig overrides the scene tunables. Every field is optional; anything
// left unset keeps the shipped default.
type GameConfig struct {
	SpawnInterval     string  `json:"spawn_interval,omitempty"`
	WalkSpeed         float64 `json:"walk_speed,omitempty"`
	WaitTime          string  `json:"wait_time,omitempty"`
	WaitTimeVariation string  `json:"wait_time_variation,omitempty"`
	WinThreshold      int     `json:"win_threshold,omitempty"`
	LoseThreshold     int     `json:"lose_threshold,omitempty"`

	Origins       []geom.Point3     `json:"origins,omitempty"`
	Spots         []geom.Point3     `json:"spots,omitempty"`
	ExpectedItems map[string]string `json:"expected_items,omitempty"`
}

func (g *GameConfig) Validate() error {
	el := errors.NewErrorList()

	for name, field := range map[string]string{
		"spawn_interval":      g.SpawnInterval,
		"wait_time":           g.WaitTime,
		"wait_time_variation": g.WaitTimeVariation,
	} {
		if field == "" {
			continue
		}
		if _, err := time.ParseDuration(field); err != nil {
			el.Add(fmt.Errorf("parsing %s: %w", name, err))
		}
	}

	if g.WalkSpeed < 0 {
		el.Add(fmt.Errorf("walk_speed must not be negative"))
	}
	if len(g.Origins) != 0 && len(g.Origins) != 2 {
		el.Add(fmt.Errorf("origins must list exactly two points"))
	}

	settings, err := g.BuildSettings()
	if err != nil {
		el.Add(err)
		return el.Err()
	}
	el.Add(settings.Validate())

	return el.Err()
}

// BuildSettings starts from the defaults and layers the configured overrides
// on top.
func (g *GameConfig) BuildSettings() (game.Settings, error) {
	s := game.DefaultSettings()

	if g.SpawnInterval != "" {
		d, err := time.ParseDuration(g.SpawnInterval)
		if err != nil {
			return s, fmt.Errorf("parsing spawn_interval: %w", err)
		}
		s.SpawnInterval = d
	}
	if g.WaitTime != "" {
		d, err := time.ParseDuration(g.WaitTime)
		if err != nil {
			return s, fmt.Errorf("parsing wait_time: %w", err)
		}
		s.WaitTime = d
	}
	if g.WaitTimeVariation != "" {
		d, err := time.ParseDuration(g.WaitTimeVariation)
		if err != nil {
			return s, fmt.Errorf("parsing wait_time_variation: %w", err)
		}
		s.WaitTimeVariation = d
	}
	if g.WalkSpeed != 0 {
		s.WalkSpeed = g.WalkSpeed
	}
	if g.WinThreshold != 0 {
		s.WinThreshold = g.WinThreshold
	}
	if g.LoseThreshold != 0 {
		s.LoseThreshold = g.LoseThreshold
	}
	if len(g.Origins) == 2 {
		s.Origins = [2]geom.Point3{g.Origins[0], g.Origins[1]}
	}
	if len(g.Spots) > 0 {
		s.Spots = g.Spots
	}
	if len(g.ExpectedItems) > 0 {
		s.ExpectedItems = make(map[game.Race]game.ItemType, len(g.ExpectedItems))
		for race, item := range g.ExpectedItems {
			s.ExpectedItems[game.Race(race)] = game.ItemType(item)
		}
	}

	return s, nil
}
