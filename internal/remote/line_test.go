package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		in   string
		want Line
	}{
		{in: "→ Running 'nginx.sh'", want: Line{Kind: LineRunning, Text: "Running 'nginx.sh'"}},
		{in: "→ Running 'dir/with space.sh'\r", want: Line{Kind: LineRunning, Text: "Running 'dir/with space.sh'"}},
		{in: "ERROR: 'nginx.sh' failed", want: Line{Kind: LineError, Text: "'nginx.sh' failed"}},
		{in: "ERROR: ", want: Line{Kind: LineError, Text: ""}},
		{in: "installing nginx", want: Line{Kind: LineOutput, Text: "installing nginx"}},
		{in: "→ Running nginx.sh", want: Line{Kind: LineOutput, Text: "→ Running nginx.sh"}},
		{in: "  ERROR: indented", want: Line{Kind: LineOutput, Text: "  ERROR: indented"}},
		{in: "", want: Line{Kind: LineOutput}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseLine(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Kind != LineOutput, got.IsMarker())
		})
	}
}

func TestLineKindString(t *testing.T) {
	assert.Equal(t, "output", LineOutput.String())
	assert.Equal(t, "running", LineRunning.String())
	assert.Equal(t, "error", LineError.String())
}
