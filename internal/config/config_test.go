package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-watchface/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"KeyringService", config.KeyringService},
		{"DefaultShape", config.DefaultShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestGeometry_Sanity checks that the face metrics stay consistent with each other.
func TestGeometry_Sanity(t *testing.T) {
	assert.Equal(t, 6, config.DegreesPerMinuteUnit)
	assert.Equal(t, 30, config.DegreesPerHourUnit)
	assert.Less(t, config.MinutesTrackOffset, config.SecondsTrackOffset)
	assert.Greater(t, config.PaddingRound, config.PaddingRect, "Round displays need more padding")

	// The innermost track must still have room for its stroke.
	inner := (config.RectFaceWidth-config.PaddingRect)/2 - config.SecondsTrackOffset
	assert.Greater(t, inner, config.TrackStroke)

	// A delta of half a revolution or more would invert the arcs.
	assert.Less(t, 2*config.DefaultArcDelta, config.DegreesPerRevolution)
}

func TestWeekdayKeys_Order(t *testing.T) {
	assert.Equal(t, config.TKeyDaySun, config.WeekdayKeys[time.Sunday])
	assert.Equal(t, config.TKeyDaySat, config.WeekdayKeys[time.Saturday])
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Second, config.TickInterval, "The face redraws once per second")
	assert.Greater(t, config.TrayIconInterval, config.TickInterval)
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Less(t, config.MinPort, config.MaxPort)
}
