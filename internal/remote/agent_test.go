package remote

import (
	"context"
	stderrors "errors"
	"net"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh/agent"

	"github.com/rileyhilliard/shellshock/internal/logger"
)

const agentOutput = `SSH_AUTH_SOCK=/tmp/ssh-XXXXabc/agent.4242; export SSH_AUTH_SOCK;
SSH_AGENT_PID=4243; export SSH_AGENT_PID;
echo Agent pid 4243;
`

func TestParseAgentOutput(t *testing.T) {
	vars := ParseAgentOutput(agentOutput)
	assert.Equal(t, [][2]string{
		{"SSH_AUTH_SOCK", "/tmp/ssh-XXXXabc/agent.4242"},
		{"SSH_AGENT_PID", "4243"},
	}, vars)

	assert.Empty(t, ParseAgentOutput(""))
	assert.Empty(t, ParseAgentOutput("garbage\n"))
}

func TestAgentSession_StartsOnce(t *testing.T) {
	var starts atomic.Int32
	log := logger.NewBufferLogger()

	s := NewAgentSession(
		WithAgentStarter(func(context.Context) ([]byte, error) {
			starts.Add(1)
			return []byte(agentOutput), nil
		}),
		WithAgentDialer(func(sock string) (net.Conn, error) {
			client, server := net.Pipe()
			go func() {
				_ = agent.ServeAgent(agent.NewKeyring(), server)
			}()
			return client, nil
		}),
		WithAgentLogger(log),
	)

	want := []string{"SSH_AUTH_SOCK=/tmp/ssh-XXXXabc/agent.4242", "SSH_AGENT_PID=4243"}
	assert.Equal(t, want, s.Environ(context.Background()))
	assert.Equal(t, want, s.Environ(context.Background()))
	assert.Equal(t, int32(1), starts.Load())
	assert.True(t, log.Contains("debug", "holds 0 keys"))
}

func TestAgentSession_StartFailure(t *testing.T) {
	log := logger.NewBufferLogger()
	s := NewAgentSession(
		WithAgentStarter(func(context.Context) ([]byte, error) {
			return nil, stderrors.New("ssh-agent: not found")
		}),
		WithAgentLogger(log),
	)

	assert.Empty(t, s.Environ(context.Background()))
	assert.True(t, log.Contains("warn", "couldn't start ssh-agent"))
}

func TestAgentSession_UnreachableSocket(t *testing.T) {
	log := logger.NewBufferLogger()
	s := NewAgentSession(
		WithAgentStarter(func(context.Context) ([]byte, error) {
			return []byte(agentOutput), nil
		}),
		WithAgentDialer(func(string) (net.Conn, error) {
			return nil, stderrors.New("connection refused")
		}),
		WithAgentLogger(log),
	)

	require.Len(t, s.Environ(context.Background()), 2, "env is still shared when verification fails")
	assert.True(t, log.Contains("warn", "couldn't reach ssh-agent"))
}
