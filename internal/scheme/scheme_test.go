package scheme

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/congram/internal/renderer/core"
)

func TestBuiltinEndpoints(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		t    float64
		want core.RGB
	}{
		{"plum low", Plum, 0, core.NewRGB(17, 4, 0)},
		{"plum high", Plum, 1, core.NewRGB(98, 109, 65)},
		{"sandy low", Sandy, 0, core.NewRGB(76, 32, 26)},
		{"bgy low", BlueGreenYellow, 0, core.NewRGB(18, 2, 54)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f(tt.t))
		})
	}
}

func TestSchemesStayInGamut(t *testing.T) {
	for _, name := range []string{"plum", "sandy", "bluegreenyellow"} {
		f, err := Lookup(name)
		require.NoError(t, err)
		for i := -10; i <= 20; i++ {
			c := f(float64(i) / 10)
			assert.True(t, c.InGamut(), "%s(%v) = %v", name, float64(i)/10, c)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		v, min, max float64
		want        float64
	}{
		{5, 0, 10, 0.5},
		{0, 0, 10, 0},
		{10, 0, 10, 1},
		{-3, 0, 10, 0},
		{42, 0, 10, 1},
		{7, 7, 7, 0.5},
		{1, 3, 3, 0.5},
		{math.NaN(), 0, 10, 0.5},
		{5, math.NaN(), 10, 0.5},
		{5, 0, math.Inf(1), 0},
		{math.Inf(1), 0, math.Inf(1), 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Normalize(tt.v, tt.min, tt.max), 1e-9, "Normalize(%v, %v, %v)", tt.v, tt.min, tt.max)
	}
}

func TestHeatDegenerateRange(t *testing.T) {
	a := Heat(Plum, 3, 3, 3)
	b := Heat(Plum, 3, 3, 3)
	assert.Equal(t, a, b)
	assert.Equal(t, Plum(0.5), a.Back)
}

func TestHeatForegroundIsDoubledBackground(t *testing.T) {
	s := Heat(Plum, 0, 0, 1)
	assert.Equal(t, core.NewRGB(34, 8, 0), s.Fore)
	assert.Equal(t, core.NewRGB(17, 4, 0), s.Back)

	s = Heat(Sandy, 0.5, 0, 1)
	assert.True(t, s.Fore.InGamut())
}

func TestGradientNaN(t *testing.T) {
	f, err := Gradient("#000000", "#ffffff")
	require.NoError(t, err)

	assert.NotPanics(t, func() { f(math.NaN()) })
	assert.Equal(t, f(0.5), f(math.NaN()))
}

func TestHeatNonFinite(t *testing.T) {
	f, err := Gradient("#000000", "#ffffff")
	require.NoError(t, err)

	assert.Equal(t, Heat(f, 0, 3, 3), Heat(f, math.NaN(), 0, 1))
	assert.Equal(t, Heat(f, 0, 3, 3), Heat(f, 1, math.NaN(), math.NaN()))
}

func TestGradient(t *testing.T) {
	f, err := Gradient("#000000", "#ffffff")
	require.NoError(t, err)

	assert.Equal(t, core.Black, f(0))
	assert.Equal(t, core.White, f(1))
	assert.Equal(t, core.White, f(3))

	mid := f(0.5)
	assert.InDelta(t, mid.R, mid.G, 1)
	assert.InDelta(t, mid.G, mid.B, 1)
	assert.Greater(t, mid.R, 90)
	assert.Less(t, mid.R, 160)
}

func TestGradientMultipleStops(t *testing.T) {
	f, err := Gradient("#ff0000", "#00ff00", "#0000ff")
	require.NoError(t, err)
	assert.Equal(t, core.NewRGB(0, 255, 0), f(0.5))
	assert.Equal(t, core.NewRGB(0, 0, 255), f(1))
}

func TestGradientErrors(t *testing.T) {
	_, err := Gradient("#fff")
	assert.ErrorIs(t, err, ErrTooFewStops)

	_, err = Gradient("#fff", "nothex")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	f, err := Lookup("Plum")
	require.NoError(t, err)
	assert.Equal(t, Plum(0.3), f(0.3))

	g, err := Lookup("gradient:#000,#fff")
	require.NoError(t, err)
	assert.Equal(t, core.White, g(1))

	_, err = Lookup("rainbow")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestRegister(t *testing.T) {
	Register("Mono", func(float64) core.RGB { return core.Gray })
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, "mono")
		registryMu.Unlock()
	})

	f, err := Lookup("mono")
	require.NoError(t, err)
	assert.Equal(t, core.Gray, f(0.9))
	assert.Contains(t, Names(), "mono")
}
