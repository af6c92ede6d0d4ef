package remote

import (
	"context"
	"net"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh/agent"

	"github.com/rileyhilliard/shellshock/internal/logger"
)

// AuthSockEnv names the agent socket variable printed by ssh-agent.
const AuthSockEnv = "SSH_AUTH_SOCK"

var agentLine = regexp.MustCompile(`^(\w+)=(.+?);`)

// AgentSession starts one ssh-agent per process and shares its environment
// with every command. The agent is left running when the process exits.
type AgentSession struct {
	once  sync.Once
	env   []string
	start func(ctx context.Context) ([]byte, error)
	dial  func(sock string) (net.Conn, error)
	log   logger.Logger
}

// AgentOption configures an AgentSession.
type AgentOption func(*AgentSession)

// WithAgentStarter replaces the command that starts the agent.
func WithAgentStarter(start func(ctx context.Context) ([]byte, error)) AgentOption {
	return func(s *AgentSession) {
		s.start = start
	}
}

// WithAgentDialer replaces how the agent socket is opened for verification.
func WithAgentDialer(dial func(sock string) (net.Conn, error)) AgentOption {
	return func(s *AgentSession) {
		s.dial = dial
	}
}

// WithAgentLogger sets the logger used for diagnostics.
func WithAgentLogger(l logger.Logger) AgentOption {
	return func(s *AgentSession) {
		s.log = l
	}
}

// NewAgentSession creates a session; nothing is started until Environ is called.
func NewAgentSession(opts ...AgentOption) *AgentSession {
	s := &AgentSession{
		start: func(ctx context.Context) ([]byte, error) {
			return exec.CommandContext(ctx, "ssh-agent", "-s").Output()
		},
		dial: func(sock string) (net.Conn, error) {
			return net.Dial("unix", sock)
		},
		log: logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Environ returns the agent's variables as NAME=value pairs, starting the
// agent on first use. A failure to start leaves the environment empty; ssh
// then falls back to whatever agent and keys the user already has.
func (s *AgentSession) Environ(ctx context.Context) []string {
	s.once.Do(func() {
		out, err := s.start(ctx)
		if err != nil {
			s.log.Warn("couldn't start ssh-agent: %v", err)
			return
		}
		vars := ParseAgentOutput(string(out))
		for _, v := range vars {
			s.env = append(s.env, v[0]+"="+v[1])
		}
		s.verify(vars)
	})
	return s.env
}

func (s *AgentSession) verify(vars [][2]string) {
	var sock string
	for _, v := range vars {
		if v[0] == AuthSockEnv {
			sock = v[1]
		}
	}
	if sock == "" {
		s.log.Warn("ssh-agent did not report %s", AuthSockEnv)
		return
	}

	conn, err := s.dial(sock)
	if err != nil {
		s.log.Warn("couldn't reach ssh-agent at %s: %v", sock, err)
		return
	}
	defer conn.Close()

	keys, err := agent.NewClient(conn).List()
	if err != nil {
		s.log.Warn("couldn't list ssh-agent keys: %v", err)
		return
	}
	s.log.Debug("ssh-agent at %s holds %d keys", sock, len(keys))
}

// ParseAgentOutput extracts NAME=value pairs from ssh-agent -s output, in order.
func ParseAgentOutput(out string) [][2]string {
	var vars [][2]string
	for _, line := range strings.Split(out, "\n") {
		if m := agentLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			vars = append(vars, [2]string{m[1], m[2]})
		}
	}
	return vars
}
