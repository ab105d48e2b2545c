package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-watchface/internal/engine"
	"gopkg.in/yaml.v3"
)

func TestReport_Encode(t *testing.T) {
	at := time.Date(2025, 1, 1, 14, 5, 30, 0, time.UTC)
	geom := rectGeometry()
	opts := engine.DefaultFaceOptions()
	sample := engine.NewTimeSampler(nil).OnTime(at)
	frame := engine.ComputeFrame(sample, geom, opts)

	report := engine.NewReport(at, engine.ShapeRect, sample, geom, opts, frame)
	require.Len(t, report.Tracks, engine.NumTracks)
	assert.Equal(t, "14:05:30", report.Time)
	assert.Equal(t, "hours", report.Tracks[0].Track)
	assert.Equal(t, frame.Arcs[engine.TrackSeconds], report.Tracks[engine.TrackSeconds].Arc)

	out, err := report.Encode()
	require.NoError(t, err)

	var decoded engine.Report
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, report, decoded)
	assert.Contains(t, string(out), "shape: rect")
}
