package remote

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// DryRunExecutor prints commands instead of running them.
type DryRunExecutor struct {
	mu  sync.Mutex
	out io.Writer
}

// NewDryRunExecutor creates an executor that writes each command line to out.
func NewDryRunExecutor(out io.Writer) *DryRunExecutor {
	return &DryRunExecutor{out: out}
}

// Redirect returns a dry-run executor printing to w.
func (e *DryRunExecutor) Redirect(w io.Writer) Executor {
	return NewDryRunExecutor(w)
}

// Execute prints command and reports success with no output.
func (e *DryRunExecutor) Execute(_ context.Context, command string, _ LineFunc) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(e.out, command)
	return "", nil
}
