package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "fleet", cfg.MongoDB)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 5*time.Second, cfg.PersistInterval)
	assert.Equal(t, 25.0, cfg.VisualMultiplier)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MONGO_DB", "fleet_test")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("VISUAL_MULTIPLIER", "40")

	cfg := Load()
	assert.Equal(t, "fleet_test", cfg.MongoDB)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 40.0, cfg.VisualMultiplier)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "soon")
	t.Setenv("VISUAL_MULTIPLIER", "-3")

	cfg := Load()
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 25.0, cfg.VisualMultiplier)
}
