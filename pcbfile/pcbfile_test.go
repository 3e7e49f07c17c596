package pcbfile

import (
	"strings"
	"testing"

	"github.com/arl/go-pcbvh/geom"
	"github.com/arl/go-pcbvh/primitive"
	"github.com/arl/go-pcbvh/status"
)

func TestParseSegmentsAndArcs(t *testing.T) {
	src := `
P1=(0, 0)
P2=(10, 0)
P3=(0, 10)
C1=(0, 0)
l1=segment(P1, P2)
l2=arc(C1, P2, P3)
`
	prims, err := Parse(strings.NewReader(src), DefaultLabels())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prims) != 2 {
		t.Fatalf("len(prims) = %d, want 2", len(prims))
	}
	if prims[0].Kind != primitive.Segment || prims[0].P0 != geom.Pt(0, 0) || prims[0].P1 != geom.Pt(10, 0) {
		t.Errorf("prims[0] = %+v, want segment (0,0)-(10,0)", prims[0])
	}
	if prims[1].Kind != primitive.Arc || prims[1].Center != geom.Pt(0, 0) {
		t.Errorf("prims[1] = %+v, want arc centered at origin", prims[1])
	}
}

func TestDanglingReference(t *testing.T) {
	src := `
P1=(0, 0)
P2=(1, 0)
l1=segment(P1, P3)
`
	prims, err := Parse(strings.NewReader(src), DefaultLabels())
	if err == nil {
		t.Fatal("expected a dangling-reference error")
	}
	if prims != nil {
		t.Fatal("expected no partial scene on parse failure")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("err type = %T, want *ParseError", err)
	}
	if pe.Detail != status.DanglingReference {
		t.Errorf("detail = %v, want DanglingReference", pe.Detail)
	}
}

func TestMalformedPrimitive(t *testing.T) {
	src := `
P1=(0, 0)
P2=(1, 0)
l1=triangle(P1, P2)
`
	_, err := Parse(strings.NewReader(src), DefaultLabels())
	if err == nil {
		t.Fatal("expected malformed-input error for unknown label")
	}
}

func TestMalformedPointLine(t *testing.T) {
	src := `P1=(not, a, number)`
	_, err := Parse(strings.NewReader(src), DefaultLabels())
	if err == nil {
		t.Fatal("expected malformed-input error for bad coordinate")
	}
}
