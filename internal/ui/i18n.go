package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/tartampluch/go-watchface/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// localeCode extracts "fr" from "active.fr.json".
func localeCode(name string) (string, bool) {
	if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
		return "", false
	}
	code := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
	return code, code != ""
}

// SetupI18n initializes the translation bundle and detects available languages.
func (app *WatchfaceApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		langCode, ok := localeCode(name)
		if !ok {
			msg := config.MsgLocaleSkip
			if strings.HasPrefix(name, localePrefix) {
				msg = config.MsgLocaleBadName
			}
			slog.Debug(msg,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *WatchfaceApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	localizer := i18n.NewLocalizer(app.I18nBundle, lang)

	app.localizerMut.Lock()
	app.Localizer = localizer
	app.localizerMut.Unlock()
}

// GetMsg is a helper to translate a key safely. Missing keys translate to themselves.
func (app *WatchfaceApp) GetMsg(key string) string {
	app.localizerMut.RLock()
	localizer := app.Localizer
	app.localizerMut.RUnlock()

	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// dateReadout returns the localized "Mon 05" style date line.
func (app *WatchfaceApp) dateReadout(t time.Time) string {
	key := config.WeekdayKeys[t.Weekday()]
	day := app.GetMsg(key)
	if day == key {
		day = t.Weekday().String()[:3]
	}
	return engine.FormatDate(day, t)
}

// trackName returns the localized label of a track.
func (app *WatchfaceApp) trackName(t engine.Track) string {
	switch t {
	case engine.TrackHours:
		return app.GetMsg(config.TKeyTrackHours)
	case engine.TrackMinutes:
		return app.GetMsg(config.TKeyTrackMinutes)
	default:
		return app.GetMsg(config.TKeyTrackSeconds)
	}
}

// shapeLabels maps the localized shape names shown in settings to preference values.
func (app *WatchfaceApp) shapeLabels() map[string]string {
	return map[string]string{
		app.GetMsg(config.TKeyShapeRound): config.ShapeRound,
		app.GetMsg(config.TKeyShapeRect):  config.ShapeRect,
	}
}
