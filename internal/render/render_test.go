package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
	"github.com/tartampluch/go-watchface/internal/render"
)

// scene renders the rectangular face at the given sample with stepping hands.
func scene(sample engine.TimeSample) render.Scene {
	geom := engine.NewGeometryConfig(image.Rect(0, 0, config.RectFaceWidth, config.RectFaceHeight), engine.ShapeRect)
	return render.Scene{
		Geometry: geom,
		Frame:    engine.ComputeFrame(sample, geom, engine.DefaultFaceOptions()),
		Shape:    engine.ShapeRect,
	}
}

func rgba(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestFace_Pixels(t *testing.T) {
	// 00:00:30: hours arc opens at the top, seconds hand points down.
	img := render.Image(scene(engine.TimeSample{Hours: 0, Minutes: 0, Seconds: 30}), render.DefaultPalette)
	require.Equal(t, image.Rect(0, 0, 144, 168), img.Bounds())

	// Background.
	assert.Equal(t, color.RGBA{A: 0xff}, rgba(img, 0, 0))

	// Opposite the hour hand the hours arc is solid.
	bottom := rgba(img, 72, 149)
	assert.Greater(t, bottom.R, uint8(0x80), "hours arc should be drawn at 6 o'clock")
	assert.Equal(t, bottom.R, bottom.G, "tracks are white")

	// Eight degrees past the hour hand is inside the inset gap.
	gap := rgba(img, 81, 19)
	assert.Less(t, gap.R, uint8(0x40), "arc inset should leave the gap empty")

	// The hour hand dot sits in the middle of the gap.
	hand := rgba(img, 72, 18)
	assert.Greater(t, hand.G, uint8(0x80))

	// Seconds hand is red.
	sec := rgba(img, 72, 130)
	assert.Greater(t, sec.R, uint8(0xc0))
	assert.Less(t, sec.G, uint8(0x40))
}

func TestFace_OffsetBounds(t *testing.T) {
	geom := engine.NewGeometryConfig(image.Rect(100, 50, 244, 218), engine.ShapeRect)
	frame := engine.ComputeFrame(engine.TimeSample{Seconds: 30}, geom, engine.DefaultFaceOptions())

	img := image.NewRGBA(geom.Bounds)
	render.Face(img, geom, frame, render.DefaultPalette)

	sec := img.RGBAAt(frame.Hands[engine.TrackSeconds].X, frame.Hands[engine.TrackSeconds].Y)
	assert.Greater(t, sec.R, uint8(0xc0), "hands follow the bounds origin")
}

func TestDraw_Readouts(t *testing.T) {
	s := scene(engine.TimeSample{Hours: 2, Minutes: 5, Seconds: 30})
	plain := render.Image(s, render.DefaultPalette)

	s.Time = "14:05"
	s.Date = "Wed 01"
	withText := render.Image(s, render.DefaultPalette)

	box := engine.ReadoutRect(s.Geometry.Bounds, s.Shape)
	changed := 0
	for y := box.Min.Y; y < box.Max.Y+box.Dy(); y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if plain.RGBAAt(x, y) != withText.RGBAAt(x, y) {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 20, "readouts should be drawn inside the readout boxes")
}

func TestText_Empty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	render.Text(img, img.Bounds(), "", color.White)
	assert.Equal(t, color.RGBA{}, img.RGBAAt(5, 5))
}

func TestEncodePNG(t *testing.T) {
	img := render.Image(scene(engine.TimeSample{Hours: 10, Minutes: 10, Seconds: 0}), render.DefaultPalette)

	data, err := render.EncodePNG(img)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestFace_CollapsedGeometry(t *testing.T) {
	geom := engine.NewGeometryConfig(image.Rect(0, 0, 3, 3), engine.ShapeRound)
	frame := engine.ComputeFrame(engine.TimeSample{}, geom, engine.DefaultFaceOptions())
	img := image.NewRGBA(geom.Bounds)

	assert.NotPanics(t, func() { render.Face(img, geom, frame, render.DefaultPalette) })
}
