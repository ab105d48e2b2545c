package engine

import (
	"fmt"
	"image"
	"time"

	"github.com/tartampluch/go-watchface/internal/config"
)

// FormatTime renders the digital readout, "15:04" or zero-padded "03:04".
func FormatTime(t time.Time, use24h bool) string {
	if use24h {
		return t.Format(config.TimeLayout24h)
	}
	return t.Format(config.TimeLayout12h)
}

// FormatDate renders the date readout from an already localized weekday name.
func FormatDate(weekday string, t time.Time) string {
	return fmt.Sprintf(config.FormatDate, weekday, t.Day())
}

// ReadoutMetrics holds the text sizes used for the readouts of a shape.
type ReadoutMetrics struct {
	TimeSize  float32
	DateSize  float32
	BoxHeight int
}

// MetricsFor returns the readout metrics of a display shape.
func MetricsFor(shape Shape) ReadoutMetrics {
	if shape == ShapeRect {
		return ReadoutMetrics{
			TimeSize:  config.ReadoutSizeRect,
			DateSize:  config.DateSizeRect,
			BoxHeight: config.ReadoutHeightRect,
		}
	}
	return ReadoutMetrics{
		TimeSize:  config.ReadoutSizeRound,
		DateSize:  config.DateSizeRound,
		BoxHeight: config.ReadoutHeightRound,
	}
}

// ReadoutRect is the full-width box, vertically centered in bounds, that holds
// the time readout.
func ReadoutRect(bounds image.Rectangle, shape Shape) image.Rectangle {
	h := MetricsFor(shape).BoxHeight
	top := bounds.Min.Y + (bounds.Dy()-h)/2
	return image.Rect(bounds.Min.X, top, bounds.Max.X, top+h)
}

// FaceSize is the default window size of a shape, in device-independent pixels.
func FaceSize(shape Shape) image.Point {
	if shape == ShapeRect {
		return image.Pt(config.RectFaceWidth, config.RectFaceHeight)
	}
	return image.Pt(config.RoundFaceWidth, config.RoundFaceHeight)
}
