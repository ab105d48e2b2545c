package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
)

func TestGeometryCell(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	app.Preferences.SetString(config.PrefShape, config.ShapeRect)
	app.reloadSettings()
	app.handleTick()

	frame := app.geometryFrame()

	tests := []struct {
		track engine.Track
		col   int
		want  string
	}{
		{engine.TrackHours, config.ColIDTrack, "Hours"},
		{engine.TrackHours, config.ColIDStart, "72°"},
		{engine.TrackHours, config.ColIDEnd, "408°"},
		{engine.TrackHours, config.ColIDDevice, "13107 → 74274"},
		{engine.TrackHours, config.ColIDHand, "(129, 51)"},
		{engine.TrackMinutes, config.ColIDStart, "42°"},
		{engine.TrackMinutes, config.ColIDHand, "(100, 36)"},
		{engine.TrackSeconds, config.ColIDTrack, "Seconds"},
		{engine.TrackSeconds, config.ColIDEnd, "528°"},
		{engine.TrackSeconds, config.ColIDHand, "(72, 130)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, app.geometryCell(frame, tt.track, tt.col))
		})
	}
}

func TestShowGeometryWindow_Lifecycle(t *testing.T) {
	app, _ := setupTestApp(t)
	app.handleTick()

	app.ShowGeometryWindow()
	require.NotNil(t, app.geometryWindow)
	require.NotNil(t, app.geometryRefresh)
	first := app.geometryWindow

	// A redraw pushes the new frame into the open table.
	assert.NotPanics(t, func() { app.Face.redraw() })

	app.ShowGeometryWindow()
	assert.Same(t, first, app.geometryWindow, "Second call must focus the open window")

	first.Close()
	assert.Nil(t, app.geometryWindow)
	assert.Nil(t, app.geometryRefresh)
}
