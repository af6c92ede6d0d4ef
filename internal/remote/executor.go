package remote

import (
	"context"
	"io"
)

// Executor runs a local command line, usually an ssh or scp invocation.
//
// Execute returns the command's captured stdout. onLine, when non-nil, is
// called for every stdout line as it arrives, runner markers included.
// A non-zero exit returns *errors.CommandFailedError.
type Executor interface {
	Execute(ctx context.Context, command string, onLine LineFunc) (string, error)
}

// Redirector is implemented by executors that print what they would run.
// Redirect returns a copy writing to w instead.
type Redirector interface {
	Redirect(w io.Writer) Executor
}

// LineFunc receives streamed output lines.
type LineFunc func(Line)
