package logger

import (
	"bytes"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestEnvLogger_DebugGate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		forced  bool
		visible bool
	}{
		{name: "hidden by default", visible: false},
		{name: "env var", env: "1", visible: true},
		{name: "--debug", forced: true, visible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			t.Setenv(DebugEnv, tt.env)
			EnableDebug(tt.forced)
			defer EnableDebug(false)

			NewEnvLogger("[shellshock]").Debug("running %s", "nginx.sh")

			if tt.visible {
				assert.Contains(t, buf.String(), "[shellshock] running nginx.sh")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_LevelPrefixes(t *testing.T) {
	buf := captureLog(t)
	l := NewEnvLogger("[shellshock]")

	l.Info("%d hosts", 3)
	l.Warn("web1 failed")
	l.Error("db1 unreachable")

	assert.Contains(t, buf.String(), "[shellshock] 3 hosts")
	assert.Contains(t, buf.String(), "[shellshock] WARN: web1 failed")
	assert.Contains(t, buf.String(), "[shellshock] ERROR: db1 unreachable")
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()

	var wg sync.WaitGroup
	for _, host := range []string{"web1", "web2", "web3", "db1"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Warn("%s failed", host)
		}()
	}
	wg.Wait()

	require.Len(t, l.Messages, 4)
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("debug"))
}

func TestBufferLogger_Contains(t *testing.T) {
	l := NewBufferLogger()
	l.Warn("host %s failed during %s", "web-1", "upload")

	assert.True(t, l.Contains("warn", "web-1"))
	assert.False(t, l.Contains("error", "web-1"))
	assert.False(t, l.Contains("warn", "db-1"))
}
