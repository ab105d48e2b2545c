package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
	"github.com/tartampluch/go-watchface/internal/render"
	"github.com/tartampluch/go-watchface/internal/server"
	"github.com/zalando/go-keyring"
)

// iconTime is the hand position used for the application icon.
var iconTime = time.Date(2000, time.January, 1, 10, 10, 30, 0, time.Local)

// FaceSettings is the host configuration the redraw step depends on.
type FaceSettings struct {
	Shape    engine.Shape
	Options  engine.FaceOptions
	ShowDate bool
	Use24h   bool
}

// WatchfaceApp encapsulates the UI state, preferences, and the tick loop.
type WatchfaceApp struct {
	App            fyne.App
	FaceWindow     fyne.Window
	SettingsWindow fyne.Window
	Preferences    fyne.Preferences
	I18nBundle     *i18n.Bundle
	Ctx            context.Context

	// Localizer is read by the tick worker for the date readout and
	// replaced on the UI goroutine when the language changes.
	localizerMut sync.RWMutex
	Localizer    *i18n.Localizer

	Server  *server.SnapshotServer
	Clock   engine.Clock // Injected clock for testability
	Sampler *engine.TimeSampler
	Face    *faceView

	Tray desktop.App
	Menu *fyne.Menu

	TrayShowItem     *fyne.MenuItem
	TrayGeometryItem *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan struct{}

	settingsMut sync.RWMutex
	settings    FaceSettings

	serverMut    sync.Mutex
	serverCancel context.CancelFunc

	geometryWindow  fyne.Window
	geometryRefresh func()
	lastIcon        time.Time

	// uiDo runs f on the UI goroutine.
	uiDo func(f func())
}

// NewWatchfaceApp constructs the application and wires dependencies.
func NewWatchfaceApp(a fyne.App, ctx context.Context, srv *server.SnapshotServer) *WatchfaceApp {
	app := &WatchfaceApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Clock:              engine.RealClock{}, // Default to real clock in production
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan struct{}, config.ChannelBufferSize),
		uiDo:               fyne.Do,
	}
	app.settings = app.loadFaceSettings()
	app.Face = newFaceView(app)
	app.Sampler = engine.NewTimeSampler(app.Face.scheduler)

	if icon, err := app.iconResource(iconTime); err == nil {
		a.SetIcon(icon)
	} else {
		slog.Warn(config.ErrPNGEncode, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
	}
	return app
}

// Run launches the application services and the main UI loop.
func (app *WatchfaceApp) Run() {
	app.SetupI18n()
	app.watchPreferences()
	app.applyServerSettings()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowFaceWindow()
	go app.tickWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *WatchfaceApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- struct{}{}:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *WatchfaceApp) setupTrayMenu() {
	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShow), func() {
		app.ShowFaceWindow()
	})
	app.TrayGeometryItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuGeometry), func() {
		app.ShowGeometryWindow()
	})
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayShowItem,
		fyne.NewMenuItemSeparator(),
		app.TrayGeometryItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *WatchfaceApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShow)
	app.TrayGeometryItem.Label = app.GetMsg(config.TKeyMenuGeometry)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// tickWorker samples the clock once per second until the context ends.
func (app *WatchfaceApp) tickWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	// Sample immediately so the first frame is not a zero time.
	app.handleTick()

	ticker := time.NewTicker(config.TickInterval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, config.TickInterval)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			app.stopServer()
			return

		case <-app.configChan:
			app.reloadSettings()

		case <-ticker.C:
			app.handleTick()
		}
	}
}

// handleTick stores the new sample (which schedules a redraw) and feeds the
// consumers that live outside the face window.
func (app *WatchfaceApp) handleTick() {
	now := app.Clock.Now()
	app.Sampler.OnTime(now)
	app.publishSnapshot(now)
	app.updateTrayIcon(now)
}

// reloadSettings re-reads the preferences and redraws with them.
func (app *WatchfaceApp) reloadSettings() {
	s := app.loadFaceSettings()

	app.settingsMut.Lock()
	app.settings = s
	app.settingsMut.Unlock()

	slog.Info(config.MsgOptionsReload,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyShape, s.Shape.String(),
		config.LogKeySweepMin, s.Options.SweepMinutes,
		config.LogKeySweepHour, s.Options.SweepHours)

	app.applyServerSettings()
	app.lastIcon = time.Time{}
	app.Face.scheduler.MarkDirty()
}

// currentSettings returns the settings the next redraw will use.
func (app *WatchfaceApp) currentSettings() FaceSettings {
	app.settingsMut.RLock()
	defer app.settingsMut.RUnlock()
	return app.settings
}

// loadFaceSettings assembles the face configuration from UI preferences.
func (app *WatchfaceApp) loadFaceSettings() FaceSettings {
	shape, err := engine.ParseShape(app.Preferences.StringWithFallback(config.PrefShape, config.DefaultShape))
	if err != nil {
		slog.Warn(config.ErrUnknownShape,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}

	opts := engine.DefaultFaceOptions()
	opts.SweepMinutes = app.Preferences.BoolWithFallback(config.PrefSweepMinutes, config.DefaultSweepMinutes)
	opts.SweepHours = app.Preferences.BoolWithFallback(config.PrefSweepHours, config.DefaultSweepHours)

	return FaceSettings{
		Shape:    shape,
		Options:  opts,
		ShowDate: app.Preferences.BoolWithFallback(config.PrefShowDate, config.DefaultShowDate),
		Use24h:   app.Preferences.BoolWithFallback(config.PrefUse24h, config.DefaultUse24h),
	}
}

// scene builds a complete redraw of the face at its native size.
func (app *WatchfaceApp) scene(now time.Time, sample engine.TimeSample, s FaceSettings) render.Scene {
	bounds := image.Rectangle{Max: engine.FaceSize(s.Shape)}
	geom := engine.NewGeometryConfig(bounds, s.Shape)
	sc := render.Scene{
		Geometry: geom,
		Frame:    engine.ComputeFrame(sample, geom, s.Options),
		Shape:    s.Shape,
		Time:     engine.FormatTime(now, s.Use24h),
	}
	if s.ShowDate {
		sc.Date = app.dateReadout(now)
	}
	return sc
}

// publishSnapshot renders the face and pushes it to the snapshot server.
func (app *WatchfaceApp) publishSnapshot(now time.Time) {
	app.serverMut.Lock()
	running := app.serverCancel != nil
	srv := app.Server
	app.serverMut.Unlock()
	if !running || srv == nil {
		return
	}

	s := app.currentSettings()
	sample := app.Sampler.Sample()
	sc := app.scene(now, sample, s)

	png, err := render.EncodePNG(render.Image(sc, render.DefaultPalette))
	if err != nil {
		slog.Error(config.ErrPNGEncode, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return
	}
	report, err := engine.NewReport(now, s.Shape, sample, sc.Geometry, s.Options, sc.Frame).Encode()
	if err != nil {
		slog.Error(config.ErrYAMLEncode, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return
	}
	srv.Update(png, report)
}

// iconResource renders the round face at t as a PNG resource.
func (app *WatchfaceApp) iconResource(t time.Time) (fyne.Resource, error) {
	s := app.currentSettings()
	s.Shape = engine.ShapeRound
	s.ShowDate = false

	sc := app.scene(t, engine.NewTimeSampler(nil).OnTime(t), s)
	sc.Time = ""
	png, err := render.EncodePNG(render.Image(sc, render.DefaultPalette))
	if err != nil {
		return nil, err
	}
	return fyne.NewStaticResource(config.IconFile, png), nil
}

// updateTrayIcon refreshes the tray icon once per TrayIconInterval.
func (app *WatchfaceApp) updateTrayIcon(now time.Time) {
	slot := now.Truncate(config.TrayIconInterval)
	if app.Tray == nil || slot.Equal(app.lastIcon) {
		return
	}
	app.lastIcon = slot

	icon, err := app.iconResource(now)
	if err != nil {
		slog.Warn(config.ErrPNGEncode, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return
	}
	app.uiDo(func() {
		app.Tray.SetSystemTrayIcon(icon)
	})
}

// applyServerSettings starts, stops or restarts the snapshot server so that it
// matches the preferences.
func (app *WatchfaceApp) applyServerSettings() {
	enabled := app.Preferences.BoolWithFallback(config.PrefServerEnabled, config.DefaultServerOn)
	port := app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort)

	app.serverMut.Lock()
	running := app.serverCancel != nil
	samePort := app.Server != nil && app.Server.Port == port
	app.serverMut.Unlock()

	if running && enabled && samePort {
		app.Server.SetToken(app.loadToken())
		return
	}
	app.stopServer()
	if !enabled {
		slog.Debug(config.MsgServerDisabled, config.LogKeyComponent, config.CompUI)
		return
	}

	app.serverMut.Lock()
	if !samePort || app.Server == nil {
		app.Server = server.NewSnapshotServer(port)
	}
	srv := app.Server
	ctx, cancel := context.WithCancel(app.Ctx)
	app.serverCancel = cancel
	app.serverMut.Unlock()

	srv.SetToken(app.loadToken())

	go func() {
		if err := srv.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, srv.Port)))

			app.serverMut.Lock()
			if app.Server == srv {
				app.serverCancel = nil
			}
			app.serverMut.Unlock()
		}
	}()
}

// stopServer cancels the running snapshot server, if any.
func (app *WatchfaceApp) stopServer() {
	app.serverMut.Lock()
	defer app.serverMut.Unlock()
	if app.serverCancel != nil {
		app.serverCancel()
		app.serverCancel = nil
	}
}

// loadToken reads the snapshot server token from the OS keyring.
func (app *WatchfaceApp) loadToken() string {
	token, err := keyring.Get(config.KeyringService, config.KeyringTokenUser)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(config.MsgTokenMissing, config.LogKeyComponent, config.CompUI)
		return ""
	}
	if err != nil {
		slog.Warn(config.ErrTokenLoad,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		return ""
	}
	return token
}
