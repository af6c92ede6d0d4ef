// Package testing provides a scripted remote.Executor for tests.
package testing

import (
	"context"
	"strings"
	"sync"

	"github.com/rileyhilliard/shellshock/internal/remote"
)

// Response defines a canned result for commands matching a rule.
type Response struct {
	// Lines are streamed to the caller's LineFunc, markers included.
	Lines []string
	// Output is returned as the command's stdout. When empty, the non-marker
	// Lines joined by newlines are returned instead.
	Output string
	Err    error
}

type rule struct {
	substr string
	resp   Response
	times  int // 0 means unlimited
}

// FakeExecutor records every command and answers from registered rules.
// Commands matching no rule succeed with empty output.
type FakeExecutor struct {
	mu       sync.Mutex
	rules    []*rule
	commands []string
}

// NewFakeExecutor creates an executor with no rules.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{}
}

// On answers every command containing substr with resp. Earlier rules win.
func (f *FakeExecutor) On(substr string, resp Response) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, &rule{substr: substr, resp: resp})
	return f
}

// Once answers only the next command containing substr with resp.
func (f *FakeExecutor) Once(substr string, resp Response) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, &rule{substr: substr, resp: resp, times: 1})
	return f
}

// Execute implements remote.Executor.
func (f *FakeExecutor) Execute(ctx context.Context, command string, onLine remote.LineFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.commands = append(f.commands, command)
	resp := f.match(command)
	f.mu.Unlock()

	var output []string
	for _, text := range resp.Lines {
		line := remote.ParseLine(text)
		if onLine != nil {
			onLine(line)
		}
		if !line.IsMarker() {
			output = append(output, line.Text)
		}
	}

	if resp.Err != nil {
		return "", resp.Err
	}
	if resp.Output != "" {
		return resp.Output, nil
	}
	return strings.Join(output, "\n"), nil
}

func (f *FakeExecutor) match(command string) Response {
	for i, r := range f.rules {
		if !strings.Contains(command, r.substr) {
			continue
		}
		if r.times == 1 {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
		}
		return r.resp
	}
	return Response{}
}

// Commands returns every executed command in order.
func (f *FakeExecutor) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.commands))
	copy(out, f.commands)
	return out
}

// CommandsContaining returns the executed commands that contain substr.
func (f *FakeExecutor) CommandsContaining(substr string) []string {
	var out []string
	for _, cmd := range f.Commands() {
		if strings.Contains(cmd, substr) {
			out = append(out, cmd)
		}
	}
	return out
}

// Reset clears recorded commands and rules.
func (f *FakeExecutor) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = nil
	f.commands = nil
}
