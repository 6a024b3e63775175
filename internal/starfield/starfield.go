// Package starfield paints the night sky scene: a sky fill, a seeded field
// of stars with a realistic magnitude distribution, and a band of ground.
package starfield

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/deep-field/internal/core"
)

// Canvas geometry and seed of the classic scene.
const (
	DefaultCanvasW      = 800
	DefaultCanvasH      = 600
	DefaultGroundHeight = 50
	DefaultStarCount    = 800
	DefaultSeed         = 29292929
)

// bucket is a weighted choice.
type bucket[T any] struct {
	value  T
	weight float64
}

// Star radius distribution. Larger stars are rarer.
var magnitudeBuckets = []bucket[float64]{
	{1.0, 0.262},
	{1.2, 0.194},
	{1.4, 0.144},
	{1.6, 0.106},
	{1.8, 0.079},
	{2.0, 0.058},
	{2.2, 0.043},
	{2.4, 0.032},
	{2.6, 0.024},
	{2.8, 0.018},
	{3.0, 0.013},
}

var colorBuckets = []bucket[core.Color]{
	{"#d6f0ff", 1},
	{"#e0e8ff", 2},
	{"#f8f7ff", 4},
	{"#fff4ea", 2},
	{"#ffe9d2", 1},
}

// Options configures a scene.
type Options struct {
	Seed         int64
	Stars        int
	CanvasW      float64
	CanvasH      float64
	GroundHeight float64
}

// DefaultOptions returns the classic 800x600 scene.
func DefaultOptions() Options {
	return Options{
		Seed:         DefaultSeed,
		Stars:        DefaultStarCount,
		CanvasW:      DefaultCanvasW,
		CanvasH:      DefaultCanvasH,
		GroundHeight: DefaultGroundHeight,
	}
}

// Star is one star on the canvas.
type Star struct {
	Pos    core.Point
	Radius float64
	Color  core.Color
	Alpha  float64
}

// Generate places the stars for opts. The same options always produce the
// same stars.
func Generate(opts Options) []Star {
	if opts.Stars <= 0 || opts.CanvasW < 1 || opts.CanvasH < 1 {
		return nil
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	mags := newWeighted(magnitudeBuckets)
	colors := newWeighted(colorBuckets)

	stars := make([]Star, 0, opts.Stars)
	for i := 0; i < opts.Stars; i++ {
		stars = append(stars, Star{
			Radius: mags.sample(rng),
			Color:  colors.sample(rng),
			Pos:    core.XY(float64(rng.Intn(int(opts.CanvasW))), float64(rng.Intn(int(opts.CanvasH)))),
			Alpha:  0.3 + rng.Float64()*0.7,
		})
	}
	return stars
}

// Glyph returns the rune used for a star of radius r.
func Glyph(r float64) rune {
	switch {
	case r >= 2.6:
		return '*'
	case r >= 2.0:
		return '+'
	case r >= 1.4:
		return '·'
	default:
		return '.'
	}
}

func rank(r rune) int {
	switch r {
	case '*':
		return 4
	case '+':
		return 3
	case '·':
		return 2
	case '.':
		return 1
	default:
		return 0
	}
}

// Paint draws the sky, stars and ground onto dst, scaling the canvas to the
// screen. Stars behind the ground band are hidden.
func Paint(dst *core.Screen, stars []Star, opts Options) {
	dst.FillCell(core.Cell{Rune: ' ', Bg: core.ColorSky})

	view := core.Viewport{CanvasW: opts.CanvasW, CanvasH: opts.CanvasH, Cols: dst.Width(), Rows: dst.Height()}
	groundRows := GroundRows(opts, dst.Height())
	horizon := dst.Height() - groundRows

	for _, s := range stars {
		x, y := view.ToCell(s.Pos)
		if y >= horizon {
			continue
		}
		glyph := Glyph(s.Radius)
		// Brighter stars win when two land on the same cell
		if rank(glyph) < rank(dst.Get(x, y)) {
			continue
		}
		dst.Set(x, y, glyph, Fade(s.Color, core.ColorSky, s.Alpha))
	}

	dst.DrawRect(core.NewRect(0, horizon, dst.Width(), groundRows), core.Cell{Rune: ' ', Bg: core.ColorGround})
}

// GroundRows returns how many screen rows the ground band covers.
func GroundRows(opts Options, rows int) int {
	if opts.CanvasH <= 0 || opts.GroundHeight <= 0 || rows <= 0 {
		return 0
	}
	n := int(math.Round(opts.GroundHeight / opts.CanvasH * float64(rows)))
	return core.Clamp(n, 1, rows)
}

// Fade blends fg toward bg by alpha (1 keeps fg, 0 gives bg).
func Fade(fg, bg core.Color, alpha float64) core.Color {
	f, err := colorful.Hex(string(fg))
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(string(bg))
	if err != nil {
		return fg
	}
	return core.Color(b.BlendRgb(f, core.ClampF(alpha, 0, 1)).Hex())
}

// weighted samples bucket values in proportion to their weights.
type weighted[T any] struct {
	values []T
	cum    []float64
}

func newWeighted[T any](buckets []bucket[T]) weighted[T] {
	w := weighted[T]{
		values: make([]T, len(buckets)),
		cum:    make([]float64, len(buckets)),
	}
	total := 0.0
	for i, b := range buckets {
		total += b.weight
		w.values[i] = b.value
		w.cum[i] = total
	}
	return w
}

func (w weighted[T]) sample(rng *rand.Rand) T {
	x := rng.Float64() * w.cum[len(w.cum)-1]
	for i, c := range w.cum {
		if x < c {
			return w.values[i]
		}
	}
	return w.values[len(w.values)-1]
}
