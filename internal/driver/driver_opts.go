package driver

import "time"

type SceneDriverOpt func(*SceneDriver)

func WithTickLength(tickLength time.Duration) SceneDriverOpt {
	return func(d *SceneDriver) {
		d.tickLength = tickLength
	}
}
