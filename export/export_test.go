package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/arl/go-pcbvh/geom"
	"github.com/arl/go-pcbvh/primitive"
)

func TestWriteSegment(t *testing.T) {
	seg := primitive.NewSegment(geom.Pt(0, 0), geom.Pt(1, 1))
	var buf bytes.Buffer
	if err := Write(&buf, []primitive.Primitive{seg}, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "v ") != 2 {
		t.Errorf("expected 2 vertex lines, got:\n%s", out)
	}
	if strings.Count(out, "l ") != 1 {
		t.Errorf("expected 1 polyline line, got:\n%s", out)
	}
}

func TestArcMinimumSamples(t *testing.T) {
	arc := primitive.NewArc(geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(math.Cos(0.001), math.Sin(0.001)))
	samples := sampleArc(arc, DefaultConfig())
	if len(samples) < 2 {
		t.Errorf("len(samples) = %d, want >= 2", len(samples))
	}
}

func TestArcSamplingRespectsAngleStep(t *testing.T) {
	arc := primitive.NewArc(geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(-1, 0)) // half circle
	cfg := DefaultConfig()
	samples := sampleArc(arc, cfg)
	if len(samples) < 2 {
		t.Fatal("expected multiple samples over a half circle")
	}
	for i := 0; i+1 < len(samples); i++ {
		a0 := samples[i].Sub(arc.Center).Angle()
		a1 := samples[i+1].Sub(arc.Center).Angle()
		d := math.Mod(a1-a0+2*math.Pi, 2*math.Pi)
		if d > cfg.MaxAngleStep+1e-9 {
			t.Errorf("sample step %v exceeds MaxAngleStep %v", d, cfg.MaxAngleStep)
		}
	}
}
