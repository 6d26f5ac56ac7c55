package domain

import (
	"fmt"
	"math"
)

// SwipeThreshold is the absolute offset a release must exceed to count as a decision.
const SwipeThreshold = 100.0

type Decision int

const (
	NoDecision Decision = iota
	Accept
	Reject
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "none"
	}
}

// ParseDecision maps the wire names used by the CLI and UI to a Decision.
func ParseDecision(raw string) (Decision, error) {
	switch raw {
	case "accept", "a", "yes", "right":
		return Accept, nil
	case "reject", "r", "no", "left":
		return Reject, nil
	default:
		return NoDecision, fmt.Errorf("unknown decision %q", raw)
	}
}

// Classify maps the horizontal offset at release to a Decision. Offsets at
// exactly ±SwipeThreshold, and non-finite offsets, yield NoDecision.
func Classify(offset float64) Decision {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return NoDecision
	}
	switch {
	case offset > SwipeThreshold:
		return Accept
	case offset < -SwipeThreshold:
		return Reject
	default:
		return NoDecision
	}
}

// SyntheticOffset is the release offset a button press stands in for.
func SyntheticOffset(d Decision) float64 {
	switch d {
	case Accept:
		return 2 * SwipeThreshold
	case Reject:
		return -2 * SwipeThreshold
	default:
		return 0
	}
}
