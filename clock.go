package play

import (
	"math"
	"time"
)

// VirtualTime tracks the simulated time of the world. It advances by one
// fixed frame time per tick, independent of the wall clock.
type VirtualTime struct {
	Elapsed   time.Duration
	Delta     time.Duration
	DeltaSecs float64
}

func (v *VirtualTime) advance(deltaSecs float64) {
	v.Delta = time.Duration(math.Round(deltaSecs * float64(time.Second)))
	v.DeltaSecs = deltaSecs
	v.Elapsed += v.Delta
}

// Time returns the virtual time of the world.
func (w *World) Time() VirtualTime {
	return w.scheduler.time
}
