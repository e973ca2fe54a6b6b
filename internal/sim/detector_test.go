package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDetect_HarshAcceleration(t *testing.T) {
	rt := &Runtime{}
	rng := fixedRand()

	// Fires on every qualifying tick, not once per sustained burst.
	for i := 0; i < 3; i++ {
		d := Detect(rt, 40, 52, 52, 0, rng)
		assert.Equal(t, 1, d.HarshAccel, "tick %d", i)
		assert.Equal(t, 0, d.HarshBrake)
	}

	// Just under the threshold does not fire.
	d := Detect(rt, 40, 51.9, 52, 0, rng)
	assert.Equal(t, 0, d.HarshAccel)
}

func TestDetect_HarshBraking(t *testing.T) {
	rt := &Runtime{}
	rng := fixedRand()

	d := Detect(rt, 60, 48, 48, 0, rng)
	assert.Equal(t, 1, d.HarshBrake)
	assert.Equal(t, 0, d.HarshAccel)

	d = Detect(rt, 60, 49, 49, 0, rng)
	assert.Equal(t, 0, d.HarshBrake)
}

func TestDetect_OverspeedDebounce(t *testing.T) {
	rt := &Runtime{}
	rng := fixedRand()

	fired := 0
	for i := 1; i <= 8; i++ {
		d := Detect(rt, 80, 80, 80, 0, rng)
		fired += d.Overspeed
		switch i {
		case 4, 8:
			assert.Equal(t, 1, d.Overspeed, "tick %d should fire", i)
		default:
			assert.Equal(t, 0, d.Overspeed, "tick %d should not fire", i)
		}
	}
	// Sustained overspeed re-fires every 4 ticks.
	assert.Equal(t, 2, fired)
}

func TestDetect_OverspeedBoundary(t *testing.T) {
	rt := &Runtime{}
	rng := fixedRand()

	// Exactly at the limit is not overspeed; the counter stays put.
	d := Detect(rt, 70, 70, 70, 0, rng)
	assert.Equal(t, 0, d.Overspeed)
	assert.Equal(t, 0, rt.OverspeedSteps)

	d = Detect(rt, 70, 70.5, 71, 0, rng)
	assert.Equal(t, 0, d.Overspeed)
	assert.Equal(t, 1, rt.OverspeedSteps)
}

func TestDetect_SteadySpeedFatigue(t *testing.T) {
	rt := &Runtime{}
	rng := fixedRand()

	for i := 1; i <= 24; i++ {
		d := Detect(rt, 50, 51, 51, 0, rng)
		assert.Equal(t, 0, d.Fatigue, "tick %d", i)
	}
	d := Detect(rt, 50, 51, 51, 0, rng)
	assert.Equal(t, 1, d.Fatigue)

	// Counter reset after firing; a large delta resets the new streak too.
	for i := 0; i < 10; i++ {
		Detect(rt, 50, 51, 51, 0, rng)
	}
	Detect(rt, 50, 55, 55, 0, rng) // breaks the streak
	assert.Equal(t, 0, rt.SteadySteps)
}

func TestDetect_LowSpeedFatigue(t *testing.T) {
	rt := &Runtime{}
	rng := fixedRand()

	fatigue := 0
	for i := 1; i <= 40; i++ {
		// Keep the delta large enough to dodge the steady-speed path but
		// under the harsh threshold.
		prev, next := 5.0, 8.0
		if i%2 == 0 {
			prev, next = 8.0, 5.0
		}
		d := Detect(rt, prev, next, next, 0, rng)
		fatigue += d.Fatigue
	}
	assert.Equal(t, 1, fatigue)
	assert.Equal(t, 0, rt.LowSpeedSteps)

	// Speeding up resets the streak.
	Detect(rt, 8, 11, 11, 0, rng)
	for i := 0; i < 5; i++ {
		Detect(rt, 5, 8, 8, 0, rng)
	}
	assert.Equal(t, 5, rt.LowSpeedSteps)
}

func TestDetect_LongDriveFatigueLatch(t *testing.T) {
	rt := &Runtime{}
	rng := fixedRand()

	d := Detect(rt, 50, 53, 53, 121, rng)
	assert.Equal(t, 1, d.Fatigue)
	assert.True(t, rt.LongDriveFatigue)

	// Latched: does not re-fire however long the drive goes on.
	for i := 0; i < 100; i++ {
		d = Detect(rt, 50, 53, 53, 500, rng)
		assert.Equal(t, 0, d.Fatigue)
	}
}

func TestDetect_StochasticFatigueRate(t *testing.T) {
	rt := &Runtime{}
	rng := rand.New(rand.NewSource(7))

	const n = 100000
	fatigue := 0
	for i := 0; i < n; i++ {
		// Alternate deltas that trip no other detector.
		prev, next := 50.0, 53.0
		if i%2 == 0 {
			prev, next = 53.0, 50.0
		}
		d := Detect(rt, prev, next, next, 0, rng)
		fatigue += d.Fatigue
	}

	// Expected n * 0.002 = 200; allow a generous statistical band.
	assert.Greater(t, fatigue, 130)
	assert.Less(t, fatigue, 270)
}

func TestRuntimeBag(t *testing.T) {
	bag := NewRuntimeBag()
	id := primitive.NewObjectID()

	rt := bag.Get(id)
	rt.LongDriveFatigue = true

	// Same driver gets the same state back.
	assert.True(t, bag.Get(id).LongDriveFatigue)
	assert.Equal(t, 1, bag.Len())

	bag.Forget(id)
	assert.Equal(t, 0, bag.Len())
	assert.False(t, bag.Get(id).LongDriveFatigue)
}
