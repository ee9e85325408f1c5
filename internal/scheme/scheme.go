// Package scheme maps normalized values in [0, 1] to colors.
package scheme

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/congram/internal/renderer/core"
)

// Common errors.
var (
	ErrUnknownScheme = errors.New("unknown color scheme")
	ErrTooFewStops   = errors.New("gradient needs at least two stops")
)

// Func maps t in [0, 1] to a color. Output channels are always in gamut.
type Func func(t float64) core.RGB

// quadratic holds per-channel coefficients c0 + c1*t + c2*t*t, scaled by 127.
type quadratic [3][3]float64

func (q quadratic) fn() Func {
	return func(t float64) core.RGB {
		ch := func(c [3]float64) int {
			return int((c[0] + c[1]*t + c[2]*t*t) * 127)
		}
		return core.NewRGB(ch(q[0]), ch(q[1]), ch(q[2])).Clamp()
	}
}

// Built-in schemes.
var (
	Plum = quadratic{
		{0.136180, 0.775009, -0.133166},
		{0.036831, 0.040629, 0.781372},
		{-0.087716, 1.345565, -0.743961},
	}.fn()

	Sandy = quadratic{
		{0.60107395, 1.63435499, -1.9800948},
		{0.25372145, 1.98482627, -1.93612357},
		{0.20537569, 0.42332151, -0.47753999},
	}.fn()

	BlueGreenYellow = quadratic{
		{0.14628343, -0.61295736, 1.36894882},
		{0.01872288, 1.65862067, -0.8011199},
		{0.42712882, 0.5047786, -0.61649645},
	}.fn()
)

// Normalize maps v from [min, max] to [0, 1], clamping values outside the
// range. A degenerate range (max == min) or a non-finite result maps to 0.5.
func Normalize(v, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	t := (v - min) / (max - min)
	switch {
	case math.IsNaN(t) || math.IsInf(t, 0):
		return 0.5
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Ranged returns f applied to v normalized over [min, max].
func Ranged(f Func, v, min, max float64) core.RGB {
	return f(Normalize(v, min, max))
}

// Heat returns the heatmap cell style for v: the scheme color as
// background and twice that color, clamped, as foreground.
func Heat(f Func, v, min, max float64) core.Style {
	back := Ranged(f, v, min, max)
	return core.NewStyle(back.Scale(2).Clamp(), back)
}

// Gradient builds a scheme that blends between evenly spaced hex color
// stops in Lab space.
func Gradient(stops ...string) (Func, error) {
	if len(stops) < 2 {
		return nil, ErrTooFewStops
	}
	colors := make([]colorful.Color, len(stops))
	for i, s := range stops {
		c, err := core.ParseHex(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("gradient stop %d: %w", i, err)
		}
		colors[i] = c.Colorful()
	}

	segments := float64(len(colors) - 1)
	return func(t float64) core.RGB {
		switch {
		case math.IsNaN(t):
			t = 0.5
		case t <= 0:
			return core.FromColorful(colors[0])
		case t >= 1:
			return core.FromColorful(colors[len(colors)-1])
		}
		pos := t * segments
		i := int(pos)
		return core.FromColorful(colors[i].BlendLab(colors[i+1], pos-float64(i)))
	}, nil
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Func{
		"plum":            Plum,
		"sandy":           Sandy,
		"bluegreenyellow": BlueGreenYellow,
	}
)

// Register adds or replaces a named scheme. Names are case-insensitive.
func Register(name string, f Func) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = f
}

// Lookup resolves a scheme by name. A name of the form
// "gradient:#rrggbb,#rrggbb,..." builds a gradient on the fly.
func Lookup(name string) (Func, error) {
	if stops, ok := strings.CutPrefix(name, "gradient:"); ok {
		return Gradient(strings.Split(stops, ",")...)
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return f, nil
}

// Names returns the registered scheme names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
