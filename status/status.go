// Package status carries the result of a build or query as a small
// bitflag value rather than a Go error interface, so callers can test
// Success/Warning/Failure plus a specific detail without a type switch.
// The encoding packs a high-bit outcome and a low-bit detail mask into
// the same uint32.
package status

import "fmt"

// Status is a build or query outcome.
type Status uint32

// Outcome bits, mutually exclusive.
const (
	Failure Status = 1 << 31 // the operation did not complete.
	Success Status = 1 << 30 // the operation completed and produced a result.
	Warning Status = 1 << 29 // the operation completed but the result is empty/partial.

	detailMask = 0x0fffffff
)

// Detail bits, meaningful only alongside Failure or Warning.
const (
	// MalformedInput: parse or semantic error in the primitive input.
	MalformedInput = 1 << 0
	// DanglingReference: a primitive referenced a point/center id that was
	// never defined.
	DanglingReference = 1 << 1
	// EmptyScene: a query was issued against a scene with no primitives.
	EmptyScene = 1 << 2
	// StackOverflow: a traversal's fixed-depth stack would have had to
	// grow past bvh.StackDepth. Unreachable for any tree Build produces;
	// kept as a hard backstop.
	StackOverflow = 1 << 3
	// NoHits: a box-overlap query completed normally but matched nothing.
	// Carried as Warning, not Failure, since the query ran to completion
	// and just found an empty result, so callers can branch on Succeeded
	// without inspecting the result slice's length.
	NoHits = 1 << 4
)

// OK is the zero-detail Success status returned by calls with nothing
// further to report.
const OK = Success

// Error implements the error interface so a Status can be returned (and
// compared, and wrapped) anywhere Go code expects an error; only Failure
// statuses should actually be treated as errors by callers, use Failed.
func (s Status) Error() string {
	switch {
	case s&Failure != 0:
		switch uint32(s) & detailMask {
		case MalformedInput:
			return "malformed input"
		case DanglingReference:
			return "dangling reference"
		case EmptyScene:
			return "empty scene"
		case StackOverflow:
			return "stack overflow"
		default:
			return fmt.Sprintf("unspecified failure 0x%x", uint32(s)&detailMask)
		}
	case s&Warning != 0:
		if uint32(s)&detailMask == NoHits {
			return "no hits"
		}
		return fmt.Sprintf("warning 0x%x", uint32(s)&detailMask)
	default:
		return "success"
	}
}

// Succeeded reports whether s is Success (with or without detail bits).
func Succeeded(s Status) bool { return s&Success != 0 }

// Failed reports whether s is Failure.
func Failed(s Status) bool { return s&Failure != 0 }

// IsWarning reports whether s is Warning.
func IsWarning(s Status) bool { return s&Warning != 0 }

// HasDetail reports whether detail bit d is set on s.
func HasDetail(s Status, d uint32) bool { return uint32(s)&d != 0 }

// Fail builds a Failure status carrying the given detail bit.
func Fail(detailBit uint32) Status { return Failure | Status(detailBit) }

// Warn builds a Warning status carrying the given detail bit.
func Warn(detailBit uint32) Status { return Warning | Status(detailBit) }
