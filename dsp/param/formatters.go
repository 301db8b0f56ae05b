package param

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// ErrParse is returned when display text cannot be converted to a value.
var ErrParse = errors.New("param: cannot parse value")

// Formatter renders a plain value as display text, without unit.
type Formatter func(plain float64) string

// Parser converts display text, without unit, to a plain value.
type Parser func(text string) (float64, error)

// Rounded formats with a fixed number of decimals.
func Rounded(digits int) Formatter {
	return func(v float64) string {
		return formatFixed(v, digits)
	}
}

// FloatParser parses a plain decimal number.
func FloatParser() Parser {
	return func(text string) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(v) {
			return 0, ErrParse
		}
		return v, nil
	}
}

// GainToDB formats a linear gain as decibels. Silence is shown as "-inf".
func GainToDB(digits int) Formatter {
	return func(gain float64) string {
		db := core.LinearToDB(gain)
		if math.IsInf(db, -1) || math.IsNaN(db) {
			return "-inf"
		}
		return formatFixed(db, digits)
	}
}

// DBToGain parses decibel text into a linear gain. A trailing "dB" is
// accepted and "-inf" maps to silence.
func DBToGain() Parser {
	return func(text string) (float64, error) {
		text = strings.TrimSpace(text)
		if len(text) >= 2 && strings.EqualFold(text[len(text)-2:], "db") {
			text = strings.TrimSpace(text[:len(text)-2])
		}
		if strings.EqualFold(text, "-inf") {
			return 0, nil
		}
		db, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(db) {
			return 0, ErrParse
		}
		return core.DBToLinear(db), nil
	}
}

// formatFixed is strconv's fixed format without a "-0.00" result.
func formatFixed(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'f', digits, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}
	return s
}
