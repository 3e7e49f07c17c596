// Package pcbfile parses the line-oriented primitive input format: named
// point/center declarations followed by segment/arc lines referencing
// them. Parsing is scanner-plus-keyword-dispatch, and wraps every parse
// failure with the offending line number.
package pcbfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/arl/go-pcbvh/geom"
	"github.com/arl/go-pcbvh/primitive"
	"github.com/arl/go-pcbvh/status"
)

var (
	pointLine = regexp.MustCompile(`^P(\d+)=\(\s*([^,]+)\s*,\s*([^)]+)\s*\)\s*$`)
	centerLine = regexp.MustCompile(`^C(\d+)=\(\s*([^,]+)\s*,\s*([^)]+)\s*\)\s*$`)
	primLine  = regexp.MustCompile(`^l(\d+)=([^(]+)\(([^)]*)\)\s*$`)
)

// Labels names the two primitive-kind sentinels recognized on l-lines.
// They're configurable because the format documents them as "locale
// specific strings... compared as opaque byte sequences" rather than a
// fixed keyword set.
type Labels struct {
	Segment string
	Arc     string
}

// DefaultLabels is the sentinel pair used when no Labels are supplied.
func DefaultLabels() Labels { return Labels{Segment: "segment", Arc: "arc"} }

// ParseError reports the line number and underlying cause of a parse
// failure, and carries the status.Status detail bit the caller should
// surface (status.MalformedInput or status.DanglingReference).
type ParseError struct {
	Line   int
	Detail uint32
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pcbfile: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Status returns the status.Status this error corresponds to.
func (e *ParseError) Status() status.Status { return status.Fail(e.Detail) }

// Load reads path and parses it with Parse.
func Load(path string, labels Labels) ([]primitive.Primitive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, labels)
}

// Parse reads a primitive definition file from r and returns the decoded
// primitives in file order. On any malformed line or dangling reference
// it returns a *ParseError and no primitives: a parse failure never
// yields a partial scene.
func Parse(r io.Reader, labels Labels) ([]primitive.Primitive, error) {
	points := map[string]geom.Vec2{}
	centers := map[string]geom.Vec2{}

	type pendingSegment struct {
		p0, p1 string
		line   int
	}
	type pendingArc struct {
		center, p0, p1 string
		line           int
	}
	var order []int // 0 = segment, 1 = arc, indexing into the slice below
	var segments []pendingSegment
	var arcs []pendingArc

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "P"):
			id, p, err := parseCoord(pointLine, line)
			if err != nil {
				return nil, &ParseError{Line: lineno, Detail: status.MalformedInput, Err: err}
			}
			points[id] = p

		case strings.HasPrefix(line, "C"):
			id, p, err := parseCoord(centerLine, line)
			if err != nil {
				return nil, &ParseError{Line: lineno, Detail: status.MalformedInput, Err: err}
			}
			centers[id] = p

		case strings.HasPrefix(line, "l"):
			m := primLine.FindStringSubmatch(line)
			if m == nil {
				return nil, &ParseError{Line: lineno, Detail: status.MalformedInput, Err: fmt.Errorf("malformed primitive line %q", line)}
			}
			label, args := m[2], splitArgs(m[3])

			switch label {
			case labels.Segment:
				if len(args) != 2 {
					return nil, &ParseError{Line: lineno, Detail: status.MalformedInput, Err: fmt.Errorf("segment %q wants 2 point refs, got %d", line, len(args))}
				}
				order = append(order, 0)
				segments = append(segments, pendingSegment{p0: args[0], p1: args[1], line: lineno})

			case labels.Arc:
				if len(args) != 3 {
					return nil, &ParseError{Line: lineno, Detail: status.MalformedInput, Err: fmt.Errorf("arc %q wants 3 refs (center, p0, p1), got %d", line, len(args))}
				}
				order = append(order, 1)
				arcs = append(arcs, pendingArc{center: args[0], p0: args[1], p1: args[2], line: lineno})

			default:
				return nil, &ParseError{Line: lineno, Detail: status.MalformedInput, Err: fmt.Errorf("unknown primitive label %q", label)}
			}

		default:
			return nil, &ParseError{Line: lineno, Detail: status.MalformedInput, Err: fmt.Errorf("unrecognized line %q", line)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineno, Detail: status.MalformedInput, Err: err}
	}

	resolve := func(id string) (geom.Vec2, bool) {
		p, ok := points[id]
		return p, ok
	}
	resolveCenter := func(id string) (geom.Vec2, bool) {
		c, ok := centers[id]
		return c, ok
	}

	prims := make([]primitive.Primitive, 0, len(order))
	si, ai := 0, 0
	for _, kind := range order {
		if kind == 0 {
			s := segments[si]
			si++
			p0, ok0 := resolve(s.p0)
			p1, ok1 := resolve(s.p1)
			if !ok0 || !ok1 {
				return nil, &ParseError{Line: s.line, Detail: status.DanglingReference, Err: fmt.Errorf("segment references undefined point %q or %q", s.p0, s.p1)}
			}
			prims = append(prims, primitive.NewSegment(p0, p1))
		} else {
			a := arcs[ai]
			ai++
			c, okc := resolveCenter(a.center)
			p0, ok0 := resolve(a.p0)
			p1, ok1 := resolve(a.p1)
			if !okc || !ok0 || !ok1 {
				return nil, &ParseError{Line: a.line, Detail: status.DanglingReference, Err: fmt.Errorf("arc references undefined id among %q, %q, %q", a.center, a.p0, a.p1)}
			}
			prims = append(prims, primitive.NewArc(c, p0, p1))
		}
	}
	return prims, nil
}

func parseCoord(re *regexp.Regexp, line string) (id string, p geom.Vec2, err error) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", geom.Vec2{}, fmt.Errorf("malformed point/center line %q", line)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64)
	if err != nil {
		return "", geom.Vec2{}, fmt.Errorf("bad x coordinate in %q: %w", line, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(m[3]), 64)
	if err != nil {
		return "", geom.Vec2{}, fmt.Errorf("bad y coordinate in %q: %w", line, err)
	}
	return line[:1] + m[1], geom.Pt(x, y), nil
}

func splitArgs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
