package testing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/shellshock/internal/remote"
)

func TestFakeExecutor_Rules(t *testing.T) {
	boom := errors.New("boom")
	f := NewFakeExecutor().
		Once("web1", Response{Err: boom}).
		On("web", Response{Output: "ok"})

	_, err := f.Execute(context.Background(), "ssh web1 'true'", nil)
	assert.ErrorIs(t, err, boom)

	out, err := f.Execute(context.Background(), "ssh web1 'true'", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out, "Once rules are consumed")

	out, err = f.Execute(context.Background(), "ssh db1 'true'", nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.Len(t, f.Commands(), 3)
	assert.Len(t, f.CommandsContaining("web1"), 2)
}

func TestFakeExecutor_StreamsLines(t *testing.T) {
	f := NewFakeExecutor().On("runner", Response{Lines: []string{
		"→ Running 'a.sh'",
		"installed",
		"ERROR: 'b.sh' failed",
	}})

	var kinds []remote.LineKind
	out, err := f.Execute(context.Background(), "ssh web1 'bash runner'", func(l remote.Line) {
		kinds = append(kinds, l.Kind)
	})
	require.NoError(t, err)
	assert.Equal(t, "installed", out)
	assert.Equal(t, []remote.LineKind{remote.LineRunning, remote.LineOutput, remote.LineError}, kinds)
}

func TestFakeExecutor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFakeExecutor()
	_, err := f.Execute(ctx, "ssh web1 'true'", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.Commands())
}
