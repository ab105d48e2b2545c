// Package render is the drawing backend of the watchface. It rasterizes a
// computed engine.Frame with antialiased vector fills.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	// degreesPerSegment bounds the chord length used to approximate arcs.
	degreesPerSegment = 2
	circleSegments    = 32
)

// Palette holds the fixed colors of the face.
type Palette struct {
	Background color.Color
	Track      color.Color
	Hand       color.Color
	SecondHand color.Color
	Text       color.Color
}

// DefaultPalette is white on black with a red seconds hand.
var DefaultPalette = Palette{
	Background: color.Black,
	Track:      color.White,
	Hand:       color.White,
	SecondHand: color.RGBA{R: 0xff, A: 0xff},
	Text:       color.White,
}

// Scene is a complete redraw: geometry, frame and the two readouts.
type Scene struct {
	Geometry engine.GeometryConfig
	Frame    engine.Frame
	Shape    engine.Shape
	Time     string
	Date     string
}

// Face fills the background, then draws the three arcs and the three hands.
func Face(dst draw.Image, geom engine.GeometryConfig, frame engine.Frame, pal Palette) {
	draw.Draw(dst, geom.Bounds, image.NewUniform(pal.Background), image.Point{}, draw.Src)

	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	origin := b.Min

	for _, t := range engine.Tracks {
		arc := frame.Arcs[t]
		radialPath(z, origin, geom.Center, geom.TrackRadius[t], geom.TrackStroke[t], arc.Start, arc.End)
	}
	circlePath(z, origin, frame.Hands[engine.TrackMinutes].Point(), geom.HandRadius[engine.TrackMinutes])
	circlePath(z, origin, frame.Hands[engine.TrackHours].Point(), geom.HandRadius[engine.TrackHours])
	fill(z, dst, pal.Track)

	z.Reset(b.Dx(), b.Dy())
	circlePath(z, origin, frame.Hands[engine.TrackSeconds].Point(), geom.HandRadius[engine.TrackSeconds])
	fill(z, dst, pal.SecondHand)
}

// Draw renders a whole scene including the readouts.
func Draw(dst draw.Image, s Scene, pal Palette) {
	Face(dst, s.Geometry, s.Frame, pal)

	box := engine.ReadoutRect(s.Geometry.Bounds, s.Shape)
	Text(dst, box, s.Time, pal.Text)
	if s.Date != "" {
		below := box.Add(image.Pt(0, box.Dy()))
		Text(dst, below, s.Date, pal.Text)
	}
}

// Image allocates an RGBA image the size of the scene bounds and draws into it.
func Image(s Scene, pal Palette) *image.RGBA {
	img := image.NewRGBA(s.Geometry.Bounds)
	Draw(img, s, pal)
	return img
}

// Text draws s horizontally and vertically centered in box using the
// built-in bitmap face.
func Text(dst draw.Image, box image.Rectangle, s string, col color.Color) {
	if s == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	width := d.MeasureString(s).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()

	x := box.Min.X + (box.Dx()-width)/2
	y := box.Min.Y + (box.Dy()-height)/2 + m.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

// EncodePNG serializes a rendered face.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPNGEncode, err)
	}
	return buf.Bytes(), nil
}

// polar returns the point at deg degrees clockwise from 12 o'clock.
func polar(origin, center image.Point, r float64, deg float64) (float32, float32) {
	rad := deg * math.Pi / 180
	x := float64(center.X-origin.X) + r*math.Sin(rad)
	y := float64(center.Y-origin.Y) - r*math.Cos(rad)
	return float32(x), float32(y)
}

// radialPath adds an annular sector whose outer edge lies on radius and whose
// thickness grows inward, matching a radial fill inset from its bounding rect.
func radialPath(z *vector.Rasterizer, origin, center image.Point, radius, thickness float64, start, end int) {
	inner := math.Max(radius-thickness, 0)
	if radius <= 0 || end <= start {
		return
	}
	steps := (end - start + degreesPerSegment - 1) / degreesPerSegment

	z.MoveTo(polar(origin, center, radius, float64(start)))
	for i := 1; i <= steps; i++ {
		z.LineTo(polar(origin, center, radius, arcStep(start, end, steps, i)))
	}
	for i := steps; i >= 0; i-- {
		z.LineTo(polar(origin, center, inner, arcStep(start, end, steps, i)))
	}
	z.ClosePath()
}

func arcStep(start, end, steps, i int) float64 {
	return float64(start) + float64(end-start)*float64(i)/float64(steps)
}

func circlePath(z *vector.Rasterizer, origin, center image.Point, radius float64) {
	if radius <= 0 {
		return
	}
	z.MoveTo(polar(origin, center, radius, 0))
	for i := 1; i < circleSegments; i++ {
		z.LineTo(polar(origin, center, radius, float64(i)*360/circleSegments))
	}
	z.ClosePath()
}

func fill(z *vector.Rasterizer, dst draw.Image, col color.Color) {
	z.DrawOp = draw.Over
	z.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
}
