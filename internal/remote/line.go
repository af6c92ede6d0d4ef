package remote

import (
	"regexp"
	"strings"
)

// LineKind classifies a line of command output.
type LineKind int

const (
	// LineOutput is ordinary command output.
	LineOutput LineKind = iota
	// LineRunning marks the start of a script: "→ Running '<path>'".
	LineRunning
	// LineError reports a failing script: "ERROR: <message>".
	LineError
)

func (k LineKind) String() string {
	switch k {
	case LineRunning:
		return "running"
	case LineError:
		return "error"
	default:
		return "output"
	}
}

// Line is one line of streamed output.
type Line struct {
	Kind LineKind
	// Text is the line without its marker prefix.
	Text string
}

// IsMarker reports whether the line is a runner marker rather than output.
func (l Line) IsMarker() bool { return l.Kind != LineOutput }

// RunningPrefix and ErrorPrefix are printed by the runner script.
const (
	RunningPrefix = "→ "
	ErrorPrefix   = "ERROR: "
)

var runningPattern = regexp.MustCompile(`^→ (Running '.*')$`)

// ParseLine classifies a single output line (without its trailing newline).
func ParseLine(s string) Line {
	s = strings.TrimSuffix(s, "\r")
	if m := runningPattern.FindStringSubmatch(s); m != nil {
		return Line{Kind: LineRunning, Text: m[1]}
	}
	if strings.HasPrefix(s, ErrorPrefix) {
		return Line{Kind: LineError, Text: strings.TrimPrefix(s, ErrorPrefix)}
	}
	return Line{Kind: LineOutput, Text: s}
}
