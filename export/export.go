// Package export writes a scene's primitives as a plain-text
// vertex/polyline listing for external visualization tools.
package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/arl/go-pcbvh/geom"
	"github.com/arl/go-pcbvh/primitive"
)

// Color is a fixed RGB sentinel attached to every vertex of a primitive
// kind, so a viewer can tell segments and arcs apart without decoding
// the polyline structure.
type Color struct{ R, G, B float64 }

// Config controls arc sampling density and per-kind colors.
type Config struct {
	// MaxAngleStep bounds the angular distance, in radians, between
	// consecutive arc samples.
	MaxAngleStep float64
	// MaxChordError bounds the distance between an arc's true curve and
	// the chord connecting two consecutive samples.
	MaxChordError float64

	SegmentColor Color
	ArcColor     Color
}

// DefaultConfig returns sensible defaults: a 15° angle step, a chord
// error of 0.01 length units, green segments and red arcs.
func DefaultConfig() Config {
	return Config{
		MaxAngleStep:  math.Pi / 12,
		MaxChordError: 0.01,
		SegmentColor:  Color{R: 0, G: 1, B: 0},
		ArcColor:      Color{R: 1, G: 0, B: 0},
	}
}

// Write emits prims to w as `v x y z r g b` vertex lines followed by
// `l i j` polyline lines (0-based vertex indices), one polyline segment
// per consecutive pair of samples. Arcs are adaptively sampled so that no
// two consecutive samples differ by more than MaxAngleStep radians, nor
// leave more than MaxChordError of sagitta between the chord and the
// true arc; every arc contributes at least 2 samples regardless of how
// short or tightly curved it is.
func Write(w io.Writer, prims []primitive.Primitive, cfg Config) error {
	bw := bufio.NewWriter(w)

	vertexIndex := 0
	writeVertex := func(p geom.Vec2, c Color) int {
		fmt.Fprintf(bw, "v %v %v 0 %v %v %v\n", p.X, p.Y, c.R, c.G, c.B)
		idx := vertexIndex
		vertexIndex++
		return idx
	}

	for _, p := range prims {
		switch p.Kind {
		case primitive.Segment:
			i := writeVertex(p.P0, cfg.SegmentColor)
			j := writeVertex(p.P1, cfg.SegmentColor)
			fmt.Fprintf(bw, "l %d %d\n", i, j)

		case primitive.Arc:
			samples := sampleArc(p, cfg)
			indices := make([]int, len(samples))
			for k, s := range samples {
				indices[k] = writeVertex(s, cfg.ArcColor)
			}
			for k := 0; k+1 < len(indices); k++ {
				fmt.Fprintf(bw, "l %d %d\n", indices[k], indices[k+1])
			}
		}
	}

	return bw.Flush()
}

// sampleArc returns at least 2 points along a sampled so consecutive
// samples respect both cfg.MaxAngleStep and the chord-error bound derived
// from cfg.MaxChordError.
func sampleArc(a primitive.Primitive, cfg Config) []geom.Vec2 {
	const twoPi = 2 * math.Pi
	sweep := math.Mod(a.Theta1-a.Theta0+twoPi, twoPi)
	if sweep == 0 {
		sweep = twoPi
	}

	step := cfg.MaxAngleStep
	if a.Radius > 0 && cfg.MaxChordError > 0 {
		// Sagitta s = r(1-cos(θ/2)) ⇒ θ ≤ 2*acos(1 - s/r).
		ratio := 1 - cfg.MaxChordError/a.Radius
		if ratio < -1 {
			ratio = -1
		}
		if ratio > 1 {
			ratio = 1
		}
		if chordStep := 2 * math.Acos(ratio); chordStep > 0 && chordStep < step {
			step = chordStep
		}
	}
	if step <= 0 {
		step = sweep
	}

	n := int(math.Ceil(sweep / step))
	if n < 1 {
		n = 1
	}

	samples := make([]geom.Vec2, n+1)
	for i := 0; i <= n; i++ {
		theta := a.Theta0 + sweep*float64(i)/float64(n)
		samples[i] = geom.Pt(a.Center.X+a.Radius*math.Cos(theta), a.Center.Y+a.Radius*math.Sin(theta))
	}
	return samples
}
