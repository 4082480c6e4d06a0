package symptoms

import (
	"fmt"
	"strings"
)

// Severity doubles as the chart ordinal. None means skipped or not reported.
type Severity int

const (
	None Severity = iota
	Mild
	Moderate
	Severe
)

// Levels lists the selectable severities in increasing order.
var Levels = []Severity{Mild, Moderate, Severe}

func (s Severity) String() string {
	switch s {
	case Mild:
		return "Mild"
	case Moderate:
		return "Moderate"
	case Severe:
		return "Severe"
	default:
		return "None"
	}
}

// ParseSeverity accepts the level names case-insensitively, plus "skip",
// "none" and "" for None.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mild":
		return Mild, nil
	case "moderate":
		return Moderate, nil
	case "severe":
		return Severe, nil
	case "", "skip", "none":
		return None, nil
	}
	return None, fmt.Errorf("unknown severity %q", s)
}
