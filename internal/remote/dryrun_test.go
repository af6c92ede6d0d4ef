package remote

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRunExecutor(t *testing.T) {
	var buf bytes.Buffer
	e := NewDryRunExecutor(&buf)

	called := false
	out, err := e.Execute(context.Background(), "ssh web1 'rm -rf /tmp/shellshock-x'", func(Line) { called = true })
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, called)
	assert.Equal(t, "ssh web1 'rm -rf /tmp/shellshock-x'\n", buf.String())
}

func TestDryRunExecutor_Redirect(t *testing.T) {
	var shared, host bytes.Buffer
	var e Executor = NewDryRunExecutor(&shared)

	r, ok := e.(Redirector)
	require.True(t, ok)

	_, err := r.Redirect(&host).Execute(context.Background(), "ssh web1 'mkdir -p /tmp/x'", nil)
	require.NoError(t, err)
	assert.Empty(t, shared.String())
	assert.Equal(t, "ssh web1 'mkdir -p /tmp/x'\n", host.String())

	_, isRedirector := Executor(NewShellExecutor()).(Redirector)
	assert.False(t, isRedirector, "real commands aren't redirected")
}
