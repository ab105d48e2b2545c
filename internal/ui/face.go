package ui

import (
	"image"
	"image/color"
	"log/slog"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
	"github.com/tartampluch/go-watchface/internal/render"
)

// redrawScheduler turns dirty signals into redraws. Signals that arrive while
// a redraw is already queued are folded into it.
type redrawScheduler struct {
	pending  atomic.Bool
	schedule func(func())
	redraw   func()
}

// MarkDirty implements engine.Invalidator.
func (s *redrawScheduler) MarkDirty() {
	if !s.pending.CompareAndSwap(false, true) {
		return
	}
	s.schedule(func() {
		s.pending.Store(false)
		s.redraw()
	})
}

// faceView is the face window content: a raster for the arcs and hands with
// the digital readouts layered on top.
type faceView struct {
	app       *WatchfaceApp
	raster    *canvas.Raster
	timeText  *canvas.Text
	dateText  *canvas.Text
	content   *fyne.Container
	scheduler *redrawScheduler
	redraws   atomic.Int64
}

func newFaceView(app *WatchfaceApp) *faceView {
	v := &faceView{app: app}

	v.raster = canvas.NewRaster(app.renderFace)
	v.timeText = canvas.NewText("", color.White)
	v.timeText.Alignment = fyne.TextAlignCenter
	v.dateText = canvas.NewText("", color.White)
	v.dateText.Alignment = fyne.TextAlignCenter
	v.dateText.Hide()

	v.content = container.NewStack(
		v.raster,
		container.NewCenter(container.NewVBox(v.timeText, v.dateText)),
	)

	v.scheduler = &redrawScheduler{
		schedule: func(f func()) { app.uiDo(f) },
		redraw:   v.redraw,
	}
	return v
}

// redraw refreshes the readouts and repaints the raster. It runs on the UI
// goroutine.
func (v *faceView) redraw() {
	v.redraws.Add(1)

	s := v.app.currentSettings()
	now := v.app.Clock.Now()
	metrics := engine.MetricsFor(s.Shape)

	v.timeText.Text = engine.FormatTime(now, s.Use24h)
	v.timeText.TextSize = metrics.TimeSize

	if s.ShowDate {
		v.dateText.Text = v.app.dateReadout(now)
		v.dateText.TextSize = metrics.DateSize
		v.dateText.Show()
	} else {
		v.dateText.Hide()
	}

	v.timeText.Refresh()
	v.dateText.Refresh()
	v.raster.Refresh()

	if v.app.geometryRefresh != nil {
		v.app.geometryRefresh()
	}
}

// renderFace is the raster generator. The display bounds are the raster size.
func (app *WatchfaceApp) renderFace(w, h int) image.Image {
	s := app.currentSettings()
	geom := engine.NewGeometryConfig(image.Rect(0, 0, w, h), s.Shape)
	frame := engine.ComputeFrame(app.Sampler.Sample(), geom, s.Options)

	slog.Debug(config.MsgRedraw,
		config.LogKeyComponent, config.CompFace,
		config.LogKeyWidth, w,
		config.LogKeyHeight, h,
		config.LogKeyStart, frame.Arcs[engine.TrackSeconds].Start,
		config.LogKeyEnd, frame.Arcs[engine.TrackSeconds].End)

	img := image.NewRGBA(geom.Bounds)
	render.Face(img, geom, frame, render.DefaultPalette)
	return img
}

// ShowFaceWindow opens the watchface window, or focuses it if already open.
func (app *WatchfaceApp) ShowFaceWindow() {
	if app.FaceWindow != nil {
		app.FaceWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinFace))
	app.FaceWindow = w

	size := engine.FaceSize(app.currentSettings().Shape)
	w.SetContent(app.Face.content)
	w.Resize(fyne.NewSize(float32(size.X), float32(size.Y)))
	w.SetOnClosed(func() { app.FaceWindow = nil })
	w.Show()

	app.Face.redraw()
}
