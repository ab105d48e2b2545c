package ui

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-watchface/internal/config"
)

// portDigits is the length of the largest valid port number.
const portDigits = 5

// NumericalEntry is an Entry that only accepts digits typed on the keyboard.
// MaxDigits caps the typed length when positive.
type NumericalEntry struct {
	widget.Entry
	MaxDigits int
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewPortEntry returns a numerical entry validated as a TCP port.
// msg translates the error keys.
func NewPortEntry(msg func(string) string) *NumericalEntry {
	entry := NewNumericalEntry()
	entry.MaxDigits = portDigits
	entry.Validator = func(s string) error {
		if err := validatePort(s); err != nil {
			return errors.New(msg(err.Error()))
		}
		return nil
	}
	return entry
}

// validatePort returns an error whose text is the translation key of the failure.
func validatePort(s string) error {
	if s == "" {
		return errors.New(config.TKeyErrPortReq)
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(config.TKeyErrPortNum)
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(config.TKeyErrPortRange)
	}
	return nil
}

// TypedRune drops anything that is not a digit.
// Pasted text bypasses this filter and is caught by the Validator.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxDigits > 0 && utf8.RuneCountInString(e.Text) >= e.MaxDigits {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
