package sensor

import (
	"fmt"
	"math"
)

// Unit is the temperature unit shown on the dashboard.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// ParseUnit accepts "C" or "F".
func ParseUnit(s string) (Unit, bool) {
	switch Unit(s) {
	case Celsius, Fahrenheit:
		return Unit(s), true
	}
	return "", false
}

// Toggle returns the other unit.
func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

// Imperial reports whether speeds should be shown in mph.
func (u Unit) Imperial() bool { return u == Fahrenheit }

// Convert turns a Celsius value into this unit.
func (u Unit) Convert(c float64) float64 {
	if u == Fahrenheit {
		return CToF(c)
	}
	return c
}

// Format renders a Celsius value in this unit, e.g. "21.5°C".
func (u Unit) Format(c float64) string {
	return fmt.Sprintf("%.1f°%s", u.Convert(c), string(u))
}

// CToF converts Celsius to Fahrenheit rounded to one decimal.
func CToF(c float64) float64 {
	return round1(c*9/5 + 32)
}

// FToC converts Fahrenheit to Celsius rounded to one decimal.
func FToC(f float64) float64 {
	return round1((f - 32) * 5 / 9)
}

// MpsToMph converts metres per second to miles per hour.
func MpsToMph(mps float64) float64 {
	return mps * 2.237
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
