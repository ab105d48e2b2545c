package ui

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-watchface/internal/config"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	test.NewApp()

	entry := NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name     string
		input    rune
		accepted bool
	}{
		{"Digit_Zero", '0', true},
		{"Digit_Nine", '9', true},
		{"Digit_Five", '5', true},
		{"Letter_a", 'a', false},
		{"Letter_Z", 'Z', false},
		{"Symbol_Dash", '-', false},
		{"Symbol_Space", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, string(tt.input))

			if tt.accepted {
				assert.Equal(t, string(tt.input), entry.Text)
			} else {
				assert.Empty(t, entry.Text)
			}
		})
	}
}

func TestNumericalEntry_MaxDigits(t *testing.T) {
	test.NewApp()

	entry := NewPortEntry(func(k string) string { return k })
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "1234567")
	assert.Equal(t, "12345", entry.Text)
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	entry := NewNumericalEntry()
	assert.Equal(t, mobile.NumberKeyboard, entry.Keyboard())
}

// SetText bypasses TypedRune; the validator is what rejects pasted garbage.
func TestNumericalEntry_DirectSetText(t *testing.T) {
	test.NewApp()

	entry := NewPortEntry(func(k string) string { return "translated:" + k })
	entry.SetText("abc")
	assert.Equal(t, "abc", entry.Text)

	err := entry.Validate()
	require.Error(t, err)
	assert.Equal(t, "translated:"+config.TKeyErrPortNum, err.Error())
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", config.TKeyErrPortReq},
		{"x1", config.TKeyErrPortNum},
		{"0", config.TKeyErrPortRange},
		{"65536", config.TKeyErrPortRange},
		{"1", ""},
		{"18181", ""},
		{"65535", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := validatePort(tt.in)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
		})
	}
}
