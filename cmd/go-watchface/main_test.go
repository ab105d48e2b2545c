package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
	"gopkg.in/yaml.v3"
)

var morning = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func TestResolveAt(t *testing.T) {
	got, err := resolveAt(morning, "")
	require.NoError(t, err)
	assert.Equal(t, morning, got)

	got, err = resolveAt(morning, "14:05:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 3, 14, 5, 30, 0, time.UTC), got)

	_, err = resolveAt(morning, "25:00")
	assert.ErrorContains(t, err, config.ErrParseAt)
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dump(&buf, engine.FixedClock{At: morning}, "14:05:30", config.ShapeRect))

	var r engine.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &r))

	assert.Equal(t, "14:05:30", r.Time)
	assert.Equal(t, config.ShapeRect, r.Shape)
	assert.Equal(t, engine.TimeSample{Hours: 2, Minutes: 5, Seconds: 30}, r.Sample)
	require.Len(t, r.Tracks, engine.NumTracks)
	assert.Equal(t, engine.ArcSpec{Start: 72, End: 408}, r.Tracks[engine.TrackHours].Arc)
	assert.Equal(t, engine.HandPoint{X: 72, Y: 130}, r.Tracks[engine.TrackSeconds].Hand)
}

func TestDump_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorContains(t, dump(&buf, engine.RealClock{}, "", "hexagon"), config.ErrUnknownShape)
	assert.ErrorContains(t, dump(&buf, engine.RealClock{}, "noon", config.ShapeRound), config.ErrParseAt)
	assert.Zero(t, buf.Len())
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, config.AppName)
	assert.Contains(t, out, config.Version)
	assert.Contains(t, out, config.Commit)
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestLogStartupInfo(t *testing.T) {
	a := test.NewApp()
	prefs := a.Preferences()
	prefs.SetString(config.PrefShape, config.ShapeRect)
	prefs.SetBool(config.PrefSweepMinutes, true)
	prefs.SetBool(config.PrefServerEnabled, true)
	prefs.SetString(config.PrefServerPort, "19000")

	var buf bytes.Buffer
	logStartupInfo(slog.New(slog.NewJSONHandler(&buf, nil)), prefs, "/tmp/app.log")

	var entry struct {
		Msg  string `json:"msg"`
		Face struct {
			Shape    string `json:"shape"`
			SweepMin bool   `json:"sweep_minutes"`
			SweepHr  bool   `json:"sweep_hours"`
			Use24h   bool   `json:"use_24h"`
		} `json:"face"`
		Server struct {
			Enabled bool   `json:"enabled"`
			Port    string `json:"port"`
		} `json:"server"`
		Env struct {
			File string `json:"file"`
		} `json:"env"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, config.MsgAppStarting, entry.Msg)
	assert.Equal(t, config.ShapeRect, entry.Face.Shape)
	assert.True(t, entry.Face.SweepMin)
	assert.False(t, entry.Face.SweepHr)
	assert.Equal(t, config.DefaultUse24h, entry.Face.Use24h)
	assert.True(t, entry.Server.Enabled)
	assert.Equal(t, "19000", entry.Server.Port)
	assert.Equal(t, "/tmp/app.log", entry.Env.File)
}
