package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-watchface/internal/config"
	"gopkg.in/yaml.v3"
)

// TrackReport is the geometry of a single track in device and degree units.
type TrackReport struct {
	Track       string    `yaml:"track"`
	Radius      float64   `yaml:"radius"`
	Stroke      float64   `yaml:"stroke"`
	Arc         ArcSpec   `yaml:"arc"`
	DeviceStart int       `yaml:"device_start"`
	DeviceEnd   int       `yaml:"device_end"`
	Hand        HandPoint `yaml:"hand"`
	HandRadius  float64   `yaml:"hand_radius"`
}

// Report is a human-readable snapshot of one redraw.
type Report struct {
	Time         string        `yaml:"time"`
	Shape        string        `yaml:"shape"`
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	SweepMinutes bool          `yaml:"sweep_minutes"`
	SweepHours   bool          `yaml:"sweep_hours"`
	Delta        int           `yaml:"delta"`
	Sample       TimeSample    `yaml:"sample"`
	Center       HandPoint     `yaml:"center"`
	Tracks       []TrackReport `yaml:"tracks"`
}

// NewReport assembles a report from the inputs and output of ComputeFrame.
func NewReport(at time.Time, shape Shape, sample TimeSample, geom GeometryConfig, opts FaceOptions, frame Frame) Report {
	r := Report{
		Time:         at.Format(config.AtLayout),
		Shape:        shape.String(),
		Width:        geom.Bounds.Dx(),
		Height:       geom.Bounds.Dy(),
		SweepMinutes: opts.SweepMinutes,
		SweepHours:   opts.SweepHours,
		Delta:        opts.Delta,
		Sample:       sample,
		Center:       HandPoint{X: geom.Center.X, Y: geom.Center.Y},
	}
	for _, t := range Tracks {
		r.Tracks = append(r.Tracks, TrackReport{
			Track:       t.String(),
			Radius:      geom.TrackRadius[t],
			Stroke:      geom.TrackStroke[t],
			Arc:         frame.Arcs[t],
			DeviceStart: frame.Arcs[t].DeviceStart(),
			DeviceEnd:   frame.Arcs[t].DeviceEnd(),
			Hand:        frame.Hands[t],
			HandRadius:  geom.HandRadius[t],
		})
	}
	return r
}

// Encode renders the report as YAML.
func (r Report) Encode() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrYAMLEncode, err)
	}
	return out, nil
}
