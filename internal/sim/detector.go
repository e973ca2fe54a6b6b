package sim

import (
	"math"
	"math/rand"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Detection thresholds. Debounce counters reset to zero immediately after
// firing, so a sustained condition re-fires every threshold ticks rather
// than once; the long-drive latch is the single exception.
const (
	harshDeltaKmh = 12.0

	overspeedLimitKmh = 70.0
	overspeedSteps    = 4

	steadyDeltaKmh = 2.0
	steadySteps    = 25

	lowSpeedLimitKmh = 10.0
	lowSpeedSteps    = 40

	longDriveLimitMin = 120.0

	randomFatigueChance = 0.002
)

// Runtime is a driver's detection working memory. It is not a domain fact
// and is never persisted; it lives only for the scheduler's lifetime.
type Runtime struct {
	OverspeedSteps  int
	HarshAccelSteps int
	HarshBrakeSteps int
	SteadySteps     int
	LowSpeedSteps   int

	// LongDriveFatigue latches after the first long-drive alert and is only
	// cleared by Forget or a process restart. Whether it should re-arm when
	// a new trip starts is an open product question; current behaviour is
	// kept deliberately.
	LongDriveFatigue bool
}

// RuntimeBag holds per-driver runtime state, keyed by driver identity.
// It is written only by the tick loop, so no locking is needed.
type RuntimeBag struct {
	drivers map[primitive.ObjectID]*Runtime
}

// NewRuntimeBag returns an empty runtime bag.
func NewRuntimeBag() *RuntimeBag {
	return &RuntimeBag{drivers: make(map[primitive.ObjectID]*Runtime)}
}

// Get returns the runtime state for a driver, creating it on first use.
func (b *RuntimeBag) Get(driverID primitive.ObjectID) *Runtime {
	rt, ok := b.drivers[driverID]
	if !ok {
		rt = &Runtime{}
		b.drivers[driverID] = rt
	}
	return rt
}

// Forget drops a driver's runtime state, e.g. when the driver is deleted.
func (b *RuntimeBag) Forget(driverID primitive.ObjectID) {
	delete(b.drivers, driverID)
}

// Len returns the number of tracked drivers.
func (b *RuntimeBag) Len() int {
	return len(b.drivers)
}

// Detection is the set of event increments produced by one tick.
type Detection struct {
	Overspeed  int
	HarshBrake int
	HarshAccel int
	Fatigue    int
}

// Total returns the number of events fired this tick.
func (d Detection) Total() int {
	return d.Overspeed + d.HarshBrake + d.HarshAccel + d.Fatigue
}

// Detect evaluates all driving-behaviour signals for one tick.
//
// prevSpeed is the stored speed from the previous tick, newSpeed the raw
// derived speed, and roundedSpeed the value actually stored and broadcast;
// the delta uses the raw speed while the moving/low-speed checks use the
// rounded one, matching how each threshold was tuned.
func Detect(rt *Runtime, prevSpeed, newSpeed, roundedSpeed, totalDrivingMinutes float64, rng *rand.Rand) Detection {
	var d Detection
	delta := newSpeed - prevSpeed

	if delta >= harshDeltaKmh {
		rt.HarshAccelSteps++
		if rt.HarshAccelSteps >= 1 {
			d.HarshAccel++
			rt.HarshAccelSteps = 0
		}
	}

	if delta <= -harshDeltaKmh {
		rt.HarshBrakeSteps++
		if rt.HarshBrakeSteps >= 1 {
			d.HarshBrake++
			rt.HarshBrakeSteps = 0
		}
	}

	if newSpeed > overspeedLimitKmh {
		rt.OverspeedSteps++
		if rt.OverspeedSteps >= overspeedSteps {
			d.Overspeed++
			rt.OverspeedSteps = 0
		}
	}

	// Fatigue: long cumulative driving time, fired once per latch lifetime.
	if totalDrivingMinutes > longDriveLimitMin && !rt.LongDriveFatigue {
		d.Fatigue++
		rt.LongDriveFatigue = true
	}

	// Fatigue: monotonous steady speed.
	if math.Abs(delta) < steadyDeltaKmh {
		rt.SteadySteps++
		if rt.SteadySteps >= steadySteps {
			d.Fatigue++
			rt.SteadySteps = 0
		}
	} else {
		rt.SteadySteps = 0
	}

	// Fatigue: prolonged crawling.
	if roundedSpeed < lowSpeedLimitKmh {
		rt.LowSpeedSteps++
		if rt.LowSpeedSteps >= lowSpeedSteps {
			d.Fatigue++
			rt.LowSpeedSteps = 0
		}
	} else {
		rt.LowSpeedSteps = 0
	}

	// Fatigue: random micro-event.
	if rng.Float64() < randomFatigueChance {
		d.Fatigue++
	}

	return d
}
