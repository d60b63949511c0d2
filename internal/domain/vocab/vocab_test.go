package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type color string

const (
	red   color = "RED"
	green color = "GREEN"
	other color = "OTHER"
)

func newColors() *Vocabulary[color] {
	return New("Color", []color{red, green, other}, map[string]color{
		"crimson":      red,
		"forest green": green,
	}, other)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "WEB_DEVELOPMENT", Normalize("  web   development "))
	assert.Equal(t, "SOFT_SKILL", Normalize("soft-skill"))
	assert.Equal(t, "", Normalize("   "))
}

func TestCoerce(t *testing.T) {
	v := newColors()

	tests := []struct {
		raw     string
		want    color
		matched bool
	}{
		{"red", red, true},
		{"  Green ", green, true},
		{"CRIMSON", red, true},
		{"forest   green", green, true},
		{"forest-green", green, true},
		{"purple", other, false},
		{"", other, false},
	}
	for _, tt := range tests {
		got, matched := v.Coerce(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.matched, matched, tt.raw)
	}
}

func TestNew_PanicsOnBadFallback(t *testing.T) {
	assert.Panics(t, func() {
		New("Color", []color{red}, nil, green)
	})
	assert.Panics(t, func() {
		New("Color", []color{red}, map[string]color{"x": green}, red)
	})
}

func TestMembers(t *testing.T) {
	v := newColors()
	assert.Equal(t, []color{red, green, other}, v.Members())
	assert.Equal(t, []string{"RED", "GREEN", "OTHER"}, v.Strings())
	assert.True(t, v.IsMember(red))
	assert.False(t, v.IsMember("red"))
	assert.Equal(t, other, v.Fallback())
}
