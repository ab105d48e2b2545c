package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
	"github.com/tartampluch/go-watchface/internal/server"
	"github.com/tartampluch/go-watchface/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	dumpMode := flag.Bool(config.FlagDump, false, config.FlagDescDump)
	at := flag.String(config.FlagAt, "", config.FlagDescAt)
	shape := flag.String(config.FlagShape, config.DefaultShape, config.FlagDescShape)
	flag.Parse()

	if *showVersion {
		printVersion(os.Stdout)
		return config.ExitCodeSuccess
	}

	// The dump goes to stdout before logging is set up so the YAML stays clean.
	if *dumpMode {
		if err := dump(os.Stdout, engine.RealClock{}, *at, *shape); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return config.ExitCodeError
		}
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// We configure structured logging (slog) early to capture startup issues.
	logCloser, logPath := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, logPath); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context, logPath string) error {
	// Initialize Fyne App.
	a := app.NewWithID(config.AppID)

	// Startup info needs the preferences, so it is logged once the app exists.
	logStartupInfo(slog.Default(), a.Preferences(), logPath)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	// Dependency Injection.
	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewSnapshotServer(port)

	// Initialize the UI Controller (MVC pattern).
	gui := ui.NewWatchfaceApp(a, ctx, srv)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Start the Application (blocks until the app quits).
	gui.Run()

	return nil
}

// dump writes the frame report for one instant. at overrides the wall-clock
// time of today when set.
func dump(w io.Writer, clock engine.Clock, at, shapeName string) error {
	shape, err := engine.ParseShape(shapeName)
	if err != nil {
		return err
	}

	now, err := resolveAt(clock.Now(), at)
	if err != nil {
		return err
	}
	clock = engine.FixedClock{At: now}

	sample := engine.NewTimeSampler(nil).OnTime(clock.Now())
	size := engine.FaceSize(shape)
	geom := engine.NewGeometryConfig(image.Rectangle{Max: size}, shape)
	opts := engine.DefaultFaceOptions()
	frame := engine.ComputeFrame(sample, geom, opts)

	out, err := engine.NewReport(clock.Now(), shape, sample, geom, opts, frame).Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// resolveAt applies an HH:MM:SS override to the date of now.
func resolveAt(now time.Time, at string) (time.Time, error) {
	if at == "" {
		return now, nil
	}
	t, err := time.Parse(config.AtLayout, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrParseAt, err)
	}
	return time.Date(now.Year(), now.Month(), now.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
}

// printVersion writes the build information.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs the build, the environment and the face the app is
// about to show. The last run version is empty on a first run.
func logStartupInfo(log *slog.Logger, prefs fyne.Preferences, logPath string) {
	log.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuildDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
			slog.String(config.LogKeyLastRun, prefs.String(config.PrefLastRun)),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
			slog.String(config.LogKeyFile, logPath),
		),
		slog.Group(config.LogKeyFace,
			slog.String(config.LogKeyShape, prefs.StringWithFallback(config.PrefShape, config.DefaultShape)),
			slog.Bool(config.LogKeySweepMin, prefs.BoolWithFallback(config.PrefSweepMinutes, config.DefaultSweepMinutes)),
			slog.Bool(config.LogKeySweepHour, prefs.BoolWithFallback(config.PrefSweepHours, config.DefaultSweepHours)),
			slog.Bool(config.LogKeyShowDate, prefs.BoolWithFallback(config.PrefShowDate, config.DefaultShowDate)),
			slog.Bool(config.LogKeyUse24h, prefs.BoolWithFallback(config.PrefUse24h, config.DefaultUse24h)),
		),
		slog.Group(config.LogKeyServer,
			slog.Bool(config.LogKeyEnabled, prefs.BoolWithFallback(config.PrefServerEnabled, config.DefaultServerOn)),
			slog.String(config.LogKeyPort, prefs.StringWithFallback(config.PrefServerPort, config.DefaultPort)),
		),
	)
}

// setupLogging configures the default slog logger. It returns the log file
// and its path, or nil and "" when only stdout is used.
func setupLogging(debugMode bool) (io.Closer, string) {
	var writers []io.Writer
	var logFile *os.File

	// 1. Always write to Stdout.
	writers = append(writers, os.Stdout)

	// 2. Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		// Use centralized permission constants for security.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil, ""
	}
	return logFile, logFile.Name()
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
