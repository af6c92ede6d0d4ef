package remote

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rileyhilliard/shellshock/internal/errors"
	"github.com/rileyhilliard/shellshock/internal/logger"
)

// DefaultShell interprets command lines.
const DefaultShell = "/bin/sh"

// waitDelay is how long Wait lets a killed command's children hold its output open.
const waitDelay = 2 * time.Second

// Environ supplies extra environment variables for spawned commands.
type Environ interface {
	Environ(ctx context.Context) []string
}

// ShellExecutor runs command lines through a local shell.
type ShellExecutor struct {
	shell string
	env   Environ
	log   logger.Logger
}

// ShellOption configures a ShellExecutor.
type ShellOption func(*ShellExecutor)

// WithShell overrides the shell used to interpret commands.
func WithShell(shell string) ShellOption {
	return func(e *ShellExecutor) {
		e.shell = shell
	}
}

// WithEnviron adds the variables from env (typically an AgentSession) to every command.
func WithEnviron(env Environ) ShellOption {
	return func(e *ShellExecutor) {
		e.env = env
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) ShellOption {
	return func(e *ShellExecutor) {
		e.log = l
	}
}

// NewShellExecutor creates an executor running commands with /bin/sh -c.
func NewShellExecutor(opts ...ShellOption) *ShellExecutor {
	e := &ShellExecutor{shell: DefaultShell, log: logger.Noop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs command and returns its trimmed stdout with runner markers removed.
// Stderr left over after filtering is appended to the output of a successful command.
func (e *ShellExecutor) Execute(ctx context.Context, command string, onLine LineFunc) (string, error) {
	cmd := exec.CommandContext(ctx, e.shell, "-c", command)
	cmd.Env = e.environ(ctx)
	cmd.WaitDelay = waitDelay

	var captured []string
	stdout := &lineWriter{emit: func(text string) {
		line := ParseLine(text)
		if onLine != nil {
			onLine(line)
		}
		if !line.IsMarker() {
			captured = append(captured, line.Text)
		}
	}}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	e.log.Debug("exec: %s", command)
	if err := cmd.Start(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't start the command",
			fmt.Sprintf("Make sure %s exists and is executable.", e.shell))
	}
	waitErr := cmd.Wait()
	stdout.Flush()

	if ctxErr := ctx.Err(); ctxErr != nil {
		msg := "Command was cancelled"
		if stderrors.Is(ctxErr, context.DeadlineExceeded) {
			msg = "Command timed out"
		}
		return "", errors.WrapWithCode(ctxErr, errors.ErrExec, msg,
			"Raise --timeout, or check the host is responding.")
	}

	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(waitErr, &exitErr) {
			return "", errors.WrapWithCode(waitErr, errors.ErrExec,
				"Failed to execute command",
				"Check that ssh and scp are installed")
		}
		exitCode = exitErr.ExitCode()
	}

	errOut, ignorable := FilterStderr(stderr.String())
	if exitCode != 0 && !ignorable {
		e.log.Debug("exit %d: %s", exitCode, errOut)
		return "", &errors.CommandFailedError{
			Command:  command,
			ExitCode: exitCode,
			Stderr:   errOut,
		}
	}

	out := strings.Join(captured, "\n")
	if errOut != "" {
		out += "\n" + errOut
	}
	return strings.TrimSpace(out), nil
}

func (e *ShellExecutor) environ(ctx context.Context) []string {
	env := os.Environ()
	if e.env != nil {
		env = append(env, e.env.Environ(ctx)...)
	}
	return append(env, "CLICOLOR=1")
}

// lineWriter splits written bytes into lines and hands each to emit.
type lineWriter struct {
	buf  []byte
	emit func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits a trailing line that had no newline.
func (w *lineWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}
