package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-watchface/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	shapeSelect   *widget.Select
	checkSweepMin *widget.Check
	checkSweepHr  *widget.Check
	checkDate     *widget.Check
	check24h      *widget.Check
	checkServer   *widget.Check
	entryPort     *NumericalEntry
	tokenEntry    *widget.Entry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *WatchfaceApp) ShowSettingsWindow() {
	if app.SettingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.SettingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.SettingsWindow = w

	sw := app.newSettingsWidgets()

	// refreshLayout triggers a window resize based on content visibility.
	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	generalCard := app.buildGeneralCard(sw)
	faceCard := app.buildFaceCard(sw)
	serverCard := app.buildServerCard(sw, onLayoutChange)

	saveAction := func() {
		// Only the port blocks saving, and only while the server is enabled.
		if sw.checkServer.Checked {
			if err := sw.entryPort.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		generalCard,
		faceCard,
		serverCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.SettingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates the form widgets pre-filled from the preferences.
func (app *WatchfaceApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	roundLabel := app.GetMsg(config.TKeyShapeRound)
	rectLabel := app.GetMsg(config.TKeyShapeRect)
	sw.shapeSelect = widget.NewSelect([]string{roundLabel, rectLabel}, nil)
	if app.Preferences.StringWithFallback(config.PrefShape, config.DefaultShape) == config.ShapeRect {
		sw.shapeSelect.SetSelected(rectLabel)
	} else {
		sw.shapeSelect.SetSelected(roundLabel)
	}

	sw.checkSweepMin = widget.NewCheck(app.GetMsg(config.TKeyLblSweepMin), nil)
	sw.checkSweepMin.Checked = app.Preferences.BoolWithFallback(config.PrefSweepMinutes, config.DefaultSweepMinutes)

	sw.checkSweepHr = widget.NewCheck(app.GetMsg(config.TKeyLblSweepHour), nil)
	sw.checkSweepHr.Checked = app.Preferences.BoolWithFallback(config.PrefSweepHours, config.DefaultSweepHours)

	sw.checkDate = widget.NewCheck(app.GetMsg(config.TKeyLblShowDate), nil)
	sw.checkDate.Checked = app.Preferences.BoolWithFallback(config.PrefShowDate, config.DefaultShowDate)

	sw.check24h = widget.NewCheck(app.GetMsg(config.TKeyLblUse24h), nil)
	sw.check24h.Checked = app.Preferences.BoolWithFallback(config.PrefUse24h, config.DefaultUse24h)

	sw.checkServer = widget.NewCheck(app.GetMsg(config.TKeyLblServerOn), nil)
	sw.checkServer.Checked = app.Preferences.BoolWithFallback(config.PrefServerEnabled, config.DefaultServerOn)

	sw.entryPort = NewPortEntry(app.GetMsg)
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))

	sw.tokenEntry = widget.NewPasswordEntry()
	sw.tokenEntry.SetText(app.loadToken())

	return sw
}

// buildGeneralCard constructs the language and display shape form.
func (app *WatchfaceApp) buildGeneralCard(sw *settingsWidgets) *widget.Card {
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemShape := widget.NewFormItem(app.GetMsg(config.TKeyLblShape), sw.shapeSelect)

	return widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemShape))
}

// buildFaceCard constructs the hand motion and readout options.
func (app *WatchfaceApp) buildFaceCard(sw *settingsWidgets) *widget.Card {
	return widget.NewCard(app.GetMsg(config.TKeyLblMotion), "", container.NewVBox(
		sw.checkSweepMin,
		sw.checkSweepHr,
		sw.checkDate,
		sw.check24h,
	))
}

// buildServerCard constructs the snapshot server UI. The port and token rows
// are only shown while the server is enabled.
func (app *WatchfaceApp) buildServerCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	itemToken := widget.NewFormItem(app.GetMsg(config.TKeyLblToken), sw.tokenEntry)
	itemToken.HintText = app.GetMsg(config.TKeyHelpToken)

	form := widget.NewForm(itemPort, itemToken)

	sw.checkServer.OnChanged = func(b bool) {
		if b {
			form.Show()
		} else {
			form.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if !sw.checkServer.Checked {
		form.Hide()
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblServer), "", container.NewVBox(sw.checkServer, form))
}

// saveSettings persists the form. The preference change listener then
// reloads the face and the server on the tick worker.
func (app *WatchfaceApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	shape := config.ShapeRound
	if v, ok := app.shapeLabels()[sw.shapeSelect.Selected]; ok {
		shape = v
	}

	// The token goes first so the server reload triggered by the
	// preferences below picks it up.
	if err := app.saveToken(sw.tokenEntry.Text); err != nil {
		slog.Error(config.ErrTokenSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
	}

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	app.Preferences.SetString(config.PrefShape, shape)
	app.Preferences.SetBool(config.PrefSweepMinutes, sw.checkSweepMin.Checked)
	app.Preferences.SetBool(config.PrefSweepHours, sw.checkSweepHr.Checked)
	app.Preferences.SetBool(config.PrefShowDate, sw.checkDate.Checked)
	app.Preferences.SetBool(config.PrefUse24h, sw.check24h.Checked)
	app.Preferences.SetBool(config.PrefServerEnabled, sw.checkServer.Checked)

	if validatePort(sw.entryPort.Text) == nil {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	if app.FaceWindow != nil {
		app.FaceWindow.SetTitle(app.GetMsg(config.TKeyWinFace))
	}
}

// saveToken stores the token in the OS keyring. An empty token removes it.
func (app *WatchfaceApp) saveToken(token string) error {
	if token == "" {
		err := keyring.Delete(config.KeyringService, config.KeyringTokenUser)
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return err
	}
	return keyring.Set(config.KeyringService, config.KeyringTokenUser, token)
}
