package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = 50 * time.Millisecond
)

// Manager is anything the frame loop advances. dt is the wall-clock time
// since the manager's previous tick.
type Manager interface {
	Tick(ctx context.Context, dt time.Duration) error
}

// SceneDriver runs the cooperative frame loop: every manager is invoked once
// per frame, in order, with the elapsed delta. There is no parallelism
// between managers and none is allowed to assume ordering against another.
type SceneDriver struct {
	tickLength time.Duration
	managers   []Manager

	last time.Time
}

func NewSceneDriver(managers []Manager, opts ...SceneDriverOpt) *SceneDriver {
	d := &SceneDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *SceneDriver) Start(ctx context.Context) error {
	d.last = time.Now()
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(d.last)
			d.last = now
			if err := d.Tick(ctx, dt); err != nil {
				return err
			}
		}
	}
}

func (d *SceneDriver) Tick(ctx context.Context, dt time.Duration) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx, dt); err != nil {
			return err
		}
	}
	return nil
}
