package ui

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/zalando/go-keyring"
)

func TestShowSettingsWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowSettingsWindow()
	require.NotNil(t, app.SettingsWindow)
	first := app.SettingsWindow

	app.ShowSettingsWindow()
	assert.Same(t, first, app.SettingsWindow)

	first.Close()
	assert.Nil(t, app.SettingsWindow)
}

func TestSettingsWidgets_Prefill(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.Preferences.SetString(config.PrefShape, config.ShapeRect)
	app.Preferences.SetBool(config.PrefSweepHours, true)
	app.UpdateLocalizer()

	sw := app.newSettingsWidgets()
	assert.Equal(t, "en", sw.langSelect.Selected)
	assert.Equal(t, "Rectangular", sw.shapeSelect.Selected)
	assert.False(t, sw.checkSweepMin.Checked)
	assert.True(t, sw.checkSweepHr.Checked)
	assert.Equal(t, config.DefaultUse24h, sw.check24h.Checked)
	assert.Equal(t, config.DefaultPort, sw.entryPort.Text)
	assert.Empty(t, sw.tokenEntry.Text)
}

func TestSaveSettings(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()

	sw := app.newSettingsWidgets()
	sw.langSelect.SetSelected("fr")
	sw.shapeSelect.SetSelected(app.GetMsg(config.TKeyShapeRect))
	sw.checkSweepMin.SetChecked(true)
	sw.checkDate.SetChecked(true)
	sw.check24h.SetChecked(false)
	sw.entryPort.SetText("19000")
	sw.tokenEntry.SetText("s3cret")

	app.saveSettings(sw)

	assert.Equal(t, "fr", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, config.ShapeRect, app.Preferences.String(config.PrefShape))
	assert.True(t, app.Preferences.Bool(config.PrefSweepMinutes))
	assert.True(t, app.Preferences.Bool(config.PrefShowDate))
	assert.False(t, app.Preferences.Bool(config.PrefUse24h))
	assert.Equal(t, "19000", app.Preferences.String(config.PrefServerPort))
	assert.Equal(t, "s3cret", app.loadToken())

	// The localizer and the tray follow the new language.
	assert.Equal(t, "Paramètres...", app.TraySettingsItem.Label)
}

func TestSaveSettings_InvalidPortKept(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefServerPort, "18181")

	sw := app.newSettingsWidgets()
	sw.entryPort.SetText("99999")
	app.saveSettings(sw)

	assert.Equal(t, "18181", app.Preferences.String(config.PrefServerPort))
}

func TestSaveToken_EmptyDeletes(t *testing.T) {
	app, _ := setupTestApp(t)

	require.NoError(t, app.saveToken("abc"))
	assert.Equal(t, "abc", app.loadToken())

	require.NoError(t, app.saveToken(""))
	assert.Empty(t, app.loadToken())

	// Deleting a missing token is not an error.
	assert.NoError(t, app.saveToken(""))
}

// TestLoadToken_KeyringFailure separates a broken keyring from a missing token.
func TestLoadToken_KeyringFailure(t *testing.T) {
	app, _ := setupTestApp(t)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	// Missing token: debug only.
	assert.Empty(t, app.loadToken())
	assert.Contains(t, buf.String(), config.MsgTokenMissing)
	assert.NotContains(t, buf.String(), config.ErrTokenLoad)

	buf.Reset()
	keyring.MockInitWithError(errors.New("keyring locked"))
	assert.Empty(t, app.loadToken())
	assert.Contains(t, buf.String(), config.ErrTokenLoad)
	assert.Contains(t, buf.String(), "keyring locked")
}
