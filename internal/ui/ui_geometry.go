package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
)

// geometryFrame computes the frame at the native face size for the current
// sample and settings.
func (app *WatchfaceApp) geometryFrame() engine.Frame {
	s := app.currentSettings()
	return app.scene(app.Clock.Now(), app.Sampler.Sample(), s).Frame
}

// geometryCell renders one cell of the geometry table.
func (app *WatchfaceApp) geometryCell(f engine.Frame, track engine.Track, col int) string {
	arc := f.Arcs[track]
	switch col {
	case config.ColIDTrack:
		return app.trackName(track)
	case config.ColIDStart:
		return fmt.Sprintf(config.FormatDegrees, arc.Start)
	case config.ColIDEnd:
		return fmt.Sprintf(config.FormatDegrees, arc.End)
	case config.ColIDDevice:
		return fmt.Sprintf(config.FormatDevice, arc.DeviceStart(), arc.DeviceEnd())
	default:
		hand := f.Hands[track]
		return fmt.Sprintf(config.FormatPoint, hand.X, hand.Y)
	}
}

// ShowGeometryWindow displays the arcs and hand tips of the current frame.
// It implements a singleton pattern: if the window is already open, it requests focus.
// The table follows every redraw until the window is closed.
func (app *WatchfaceApp) ShowGeometryWindow() {
	if app.geometryWindow != nil {
		app.geometryWindow.RequestFocus()
		return
	}

	app.geometryWindow = app.App.NewWindow(app.GetMsg(config.TKeyWinGeometry))
	app.geometryWindow.Resize(fyne.NewSize(config.GeometryWinWidth, config.GeometryWinHeight))

	slog.Info(config.LogMsgOpenWin, config.LogKeyComponent, config.CompUI)

	// Only touched on the UI goroutine.
	frame := app.geometryFrame()

	table := widget.NewTable(
		func() (int, int) {
			return engine.NumTracks, config.GeometryCols
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= engine.NumTracks {
				return
			}
			o.(*widget.Label).SetText(app.geometryCell(frame, engine.Tracks[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabel(config.TablePlaceholder)
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		var titleKey string
		switch id.Col {
		case config.ColIDTrack:
			titleKey = config.TKeyColTrack
		case config.ColIDStart:
			titleKey = config.TKeyColStart
		case config.ColIDEnd:
			titleKey = config.TKeyColEnd
		case config.ColIDDevice:
			titleKey = config.TKeyColDevice
		default:
			titleKey = config.TKeyColHand
		}
		label := o.(*widget.Label)
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.SetText(app.GetMsg(titleKey))
	}

	table.SetColumnWidth(config.ColIDTrack, config.ColWidthTrack)
	table.SetColumnWidth(config.ColIDStart, config.ColWidthAngle)
	table.SetColumnWidth(config.ColIDEnd, config.ColWidthAngle)
	table.SetColumnWidth(config.ColIDDevice, config.ColWidthDevice)
	table.SetColumnWidth(config.ColIDHand, config.ColWidthHand)

	// Called from faceView.redraw.
	app.geometryRefresh = func() {
		frame = app.geometryFrame()
		table.Refresh()
	}

	app.geometryWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.geometryWindow.SetOnClosed(func() {
		app.geometryRefresh = nil
		app.geometryWindow = nil
	})

	app.geometryWindow.Show()
}
