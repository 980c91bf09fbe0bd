package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Listeners    []ListenerConfig `json:"listeners"`
	Storage      StorageConfig    `json:"storage"`
	Nats         NatsConfig       `json:"nats"`
	Game         GameConfig       `json:"game"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("tick_interval must be positive"))
		} else if d > time.Second {
			// The frame loop drives countdowns and tweens; a coarser tick
			// than 1s makes the scene visibly stutter.
			el.Add(fmt.Errorf("tick_interval must be at most 1 second"))
		}
	}

	for i, l := range c.Listeners {
		err := l.Validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.Game.Validate())

	return el.Err()
}
