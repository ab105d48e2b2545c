package engine

import (
	"fmt"
	"image"
	"math"

	"github.com/tartampluch/go-watchface/internal/config"
)

// Track identifies one of the three concentric rings of the face.
type Track int

const (
	TrackHours Track = iota
	TrackMinutes
	TrackSeconds

	NumTracks = 3
)

// Tracks lists every track from the outermost ring inward.
var Tracks = [NumTracks]Track{TrackHours, TrackMinutes, TrackSeconds}

func (t Track) String() string {
	switch t {
	case TrackHours:
		return "hours"
	case TrackMinutes:
		return "minutes"
	case TrackSeconds:
		return "seconds"
	default:
		return fmt.Sprintf("Track(%d)", int(t))
	}
}

// Shape is the physical outline of the display. It only selects the padding.
type Shape int

const (
	ShapeRound Shape = iota
	ShapeRect
)

func (s Shape) String() string {
	if s == ShapeRect {
		return config.ShapeRect
	}
	return config.ShapeRound
}

// ParseShape maps a preference or flag value to a Shape.
func ParseShape(s string) (Shape, error) {
	switch s {
	case config.ShapeRound, "":
		return ShapeRound, nil
	case config.ShapeRect:
		return ShapeRect, nil
	default:
		return ShapeRound, fmt.Errorf("%s: %q", config.ErrUnknownShape, s)
	}
}

// Padding returns the number of pixels removed from the display width before
// it is halved into the outer track radius.
func (s Shape) Padding() int {
	if s == ShapeRect {
		return config.PaddingRect
	}
	return config.PaddingRound
}

// ArcSpec is an arc sweep in degrees, clockwise from 12 o'clock.
type ArcSpec struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// DeviceStart returns Start in device angle units.
func (a ArcSpec) DeviceStart() int { return DegToTrigAngle(a.Start) }

// DeviceEnd returns End in device angle units.
func (a ArcSpec) DeviceEnd() int { return DegToTrigAngle(a.End) }

// HandPoint is the pixel position of a hand tip.
type HandPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Point converts the hand tip to an image.Point.
func (p HandPoint) Point() image.Point { return image.Pt(p.X, p.Y) }

// GeometryConfig holds the per-track metrics of a face, indexed by Track.
type GeometryConfig struct {
	Bounds      image.Rectangle
	Center      image.Point
	TrackRadius [NumTracks]float64
	TrackStroke [NumTracks]float64
	HandRadius  [NumTracks]float64
}

// NewGeometryConfig derives track metrics from the display bounds.
// Radii never go negative, so a collapsed window still yields a valid config.
func NewGeometryConfig(bounds image.Rectangle, shape Shape) GeometryConfig {
	hours := (bounds.Dx() - shape.Padding()) / 2

	g := GeometryConfig{
		Bounds: bounds,
		Center: image.Pt(bounds.Min.X+bounds.Dx()/2, bounds.Min.Y+bounds.Dy()/2),
	}
	g.TrackRadius[TrackHours] = nonNegative(hours)
	g.TrackRadius[TrackMinutes] = nonNegative(hours - config.MinutesTrackOffset)
	g.TrackRadius[TrackSeconds] = nonNegative(hours - config.SecondsTrackOffset)

	for _, t := range Tracks {
		g.TrackStroke[t] = config.TrackStroke
	}

	g.HandRadius[TrackHours] = config.HoursHandRadius
	g.HandRadius[TrackMinutes] = config.MinutesHandRadius
	g.HandRadius[TrackSeconds] = config.SecondsHandRadius
	return g
}

// TrackRect is the square the given track's circle is inscribed in.
func (g GeometryConfig) TrackRect(t Track) image.Rectangle {
	r := int(g.TrackRadius[t])
	return image.Rect(g.Center.X-r, g.Center.Y-r, g.Center.X+r, g.Center.Y+r)
}

func nonNegative(v int) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}

// FaceOptions selects the motion style of each hand.
type FaceOptions struct {
	SweepMinutes bool
	SweepHours   bool
	Delta        int
}

// DefaultFaceOptions returns stepping hands and the standard arc inset.
func DefaultFaceOptions() FaceOptions {
	return FaceOptions{
		SweepMinutes: config.DefaultSweepMinutes,
		SweepHours:   config.DefaultSweepHours,
		Delta:        config.DefaultArcDelta,
	}
}

// Frame is everything the drawing backend needs for one redraw.
type Frame struct {
	Arcs  [NumTracks]ArcSpec   `yaml:"arcs"`
	Hands [NumTracks]HandPoint `yaml:"hands"`
}

// ComputeFrame turns a sample into arcs and hand tips. It is a pure function.
func ComputeFrame(sample TimeSample, geom GeometryConfig, opts FaceOptions) Frame {
	minuteFraction := 0
	if opts.SweepMinutes {
		minuteFraction = sample.Seconds
	}
	hourFraction := 0
	if opts.SweepHours {
		hourFraction = sample.Minutes
	}

	var f Frame
	f.Arcs[TrackSeconds] = AngleRange60(sample.Seconds, 0, opts.Delta)
	f.Arcs[TrackMinutes] = AngleRange60(sample.Minutes, minuteFraction, opts.Delta)
	f.Arcs[TrackHours] = AngleRange12(sample.Hours, hourFraction, opts.Delta)

	f.Hands[TrackSeconds] = HandPointAt(
		float64(sample.Seconds),
		config.UnitsPerMinuteTrack, geom.TrackRadius[TrackSeconds], geom.Center)
	f.Hands[TrackMinutes] = HandPointAt(
		float64(sample.Minutes)+float64(minuteFraction)/config.SubUnitsPerUnit,
		config.UnitsPerMinuteTrack, geom.TrackRadius[TrackMinutes], geom.Center)
	f.Hands[TrackHours] = HandPointAt(
		float64(sample.Hours)+float64(hourFraction)/config.SubUnitsPerUnit,
		config.UnitsPerHourTrack, geom.TrackRadius[TrackHours], geom.Center)
	return f
}

// AngleRange60 returns the arc for a 60-unit track (seconds, minutes).
// fraction is the sub-unit progress in sixtieths; pass 0 for stepping motion.
func AngleRange60(unit, fraction, delta int) ArcSpec {
	return angleRange(unit, fraction, config.DegreesPerMinuteUnit, delta)
}

// AngleRange12 returns the arc for the 12-unit hours track.
func AngleRange12(hour, minuteFraction, delta int) ArcSpec {
	return angleRange(hour, minuteFraction, config.DegreesPerHourUnit, delta)
}

// angleRange computes start = round((unit + fraction/60) * step) + delta
// in integers so that exact halves always round up.
func angleRange(unit, fraction, step, delta int) ArcSpec {
	num := (unit*config.SubUnitsPerUnit + fraction) * step
	start := divRoundHalfUp(num, config.SubUnitsPerUnit) + delta
	return ArcSpec{
		Start: start,
		End:   start + config.DegreesPerRevolution - 2*delta,
	}
}

// divRoundHalfUp divides n by a positive d, rounding halves away from zero.
func divRoundHalfUp(n, d int) int {
	if n < 0 {
		return -divRoundHalfUp(-n, d)
	}
	return (2*n + d) / (2 * d)
}

// Round rounds half away from zero. Unlike a half-to-even rounding it always
// moves x.5 up for the non-negative values the face works with.
func Round(x float64) int {
	t := math.Trunc(x)
	if math.Abs(x-t) >= 0.5 {
		t += math.Copysign(1, x)
	}
	return int(t)
}

// HandPointAt places a hand tip on a circle of the given radius. Zero units
// point to 12 o'clock and the hand turns clockwise.
func HandPointAt(units float64, unitsPerRevolution int, radius float64, center image.Point) HandPoint {
	angle := 2 * math.Pi * units / float64(unitsPerRevolution)
	return HandPoint{
		X: Round(math.Sin(angle)*radius) + center.X,
		Y: Round(-math.Cos(angle)*radius) + center.Y,
	}
}

// DegToTrigAngle converts degrees to device angle units.
func DegToTrigAngle(deg int) int {
	return deg * config.TrigMaxAngle / config.DegreesPerRevolution
}
