package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCToF(t *testing.T) {
	tests := []struct {
		c, f float64
	}{
		{0, 32},
		{100, 212},
		{-40, -40},
		{21.3, 70.3},
		{22.22, 72},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.f, CToF(tt.c), "CToF(%v)", tt.c)
	}
}

func TestFToC(t *testing.T) {
	assert.Equal(t, 0.0, FToC(32))
	assert.Equal(t, 100.0, FToC(212))
	assert.Equal(t, 21.1, FToC(70))
}

func TestMpsToMph(t *testing.T) {
	assert.InDelta(t, 22.37, MpsToMph(10), 1e-9)
}

func TestUnit(t *testing.T) {
	u, ok := ParseUnit("F")
	assert.True(t, ok)
	assert.Equal(t, Fahrenheit, u)

	_, ok = ParseUnit("K")
	assert.False(t, ok)
	_, ok = ParseUnit("c")
	assert.False(t, ok, "units are case sensitive")

	assert.Equal(t, Fahrenheit, Celsius.Toggle())
	assert.Equal(t, Celsius, Fahrenheit.Toggle())
	assert.True(t, Fahrenheit.Imperial())
	assert.False(t, Celsius.Imperial())

	assert.Equal(t, "21.5°C", Celsius.Format(21.5))
	assert.Equal(t, "70.7°F", Fahrenheit.Format(21.5))
}
