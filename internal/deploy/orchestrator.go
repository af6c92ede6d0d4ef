package deploy

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/shellshock/internal/errors"
	"github.com/rileyhilliard/shellshock/internal/inventory"
	"github.com/rileyhilliard/shellshock/internal/logger"
	"github.com/rileyhilliard/shellshock/internal/remote"
	"github.com/rileyhilliard/shellshock/internal/ui"
)

// Orchestrator runs the selected mode against a list of hosts.
type Orchestrator struct {
	exec    remote.Executor
	builder remote.CommandBuilder
	opts    Options
	fs      afero.Fs
	out     io.Writer
	log     logger.Logger

	// outMu serializes flushes of buffered host output in parallel runs.
	outMu sync.Mutex
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFs sets the filesystem the local runner file is written to.
func WithFs(fs afero.Fs) Option {
	return func(o *Orchestrator) {
		o.fs = fs
	}
}

// WithOutput sets where progress is written.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) {
		o.out = w
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithCommandBuilder replaces the ssh/scp command builder.
func WithCommandBuilder(b remote.CommandBuilder) Option {
	return func(o *Orchestrator) {
		o.builder = b
	}
}

// NewOrchestrator creates an orchestrator issuing commands through exec.
func NewOrchestrator(exec remote.Executor, opts Options, options ...Option) *Orchestrator {
	o := &Orchestrator{
		exec:    exec,
		builder: remote.NewCommandBuilder(),
		opts:    opts,
		fs:      afero.NewOsFs(),
		out:     os.Stdout,
		log:     logger.Noop(),
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

// Run processes every host and returns the per-host report.
//
// Host failures never abort the run; they are recorded in the report. The
// returned error is reserved for problems that prevent any host from being
// processed, such as failing to write the local runner file.
func (o *Orchestrator) Run(ctx context.Context, hosts []*inventory.Host) (*Report, error) {
	if o.opts.Mode == ModeCommand && o.opts.Command == "" {
		return nil, errors.New(errors.ErrInvalidArgument,
			"No command given for command mode",
			"Pass the command to run with --command")
	}

	start := time.Now()
	report := &Report{
		Mode:    o.opts.Mode,
		DryRun:  o.opts.DryRun,
		Results: make([]HostResult, len(hosts)),
	}

	var runner *runnerArtifact
	if o.opts.Mode == ModeDeploy && len(hosts) > 0 {
		var err error
		if runner, err = writeRunner(o.fs); err != nil {
			return nil, err
		}
		defer func() {
			if err := runner.Remove(); err != nil {
				o.log.Warn("couldn't remove local runner %s: %v", runner.Path(), err)
			}
		}()
		o.log.Debug("runner written to %s", runner.Path())
	}

	if o.opts.Parallel <= 1 {
		for i, h := range hosts {
			d := ui.NewDisplay(o.out)
			if ctx.Err() != nil {
				report.Results[i] = o.cancelled(ctx, h, d)
				continue
			}
			report.Results[i] = o.runHost(ctx, h, runner, d)
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(o.opts.Parallel)
		for i, h := range hosts {
			g.Go(func() error {
				var buf bytes.Buffer
				d := ui.NewDisplay(&buf)
				if ctx.Err() != nil {
					report.Results[i] = o.cancelled(ctx, h, d)
				} else {
					report.Results[i] = o.runHost(ctx, h, runner, d)
				}
				o.flush(buf.Bytes())
				return nil
			})
		}
		_ = g.Wait()
	}

	report.Duration = time.Since(start)
	return report, nil
}

func (o *Orchestrator) flush(p []byte) {
	o.outMu.Lock()
	defer o.outMu.Unlock()
	_, _ = o.out.Write(p)
}

// cancelled records a host that was never started because the run was interrupted.
func (o *Orchestrator) cancelled(ctx context.Context, h *inventory.Host, d *ui.Display) HostResult {
	d.Host(h.Hostname())
	d.Skipped(o.opts.Mode.String(), "cancelled")
	o.log.Debug("%s skipped: %v", h.Hostname(), ctx.Err())
	return HostResult{
		Host:    h.Hostname(),
		State:   StateIdle,
		Outcome: OutcomeCancelled,
		Err:     ctx.Err(),
	}
}

func (o *Orchestrator) runHost(ctx context.Context, h *inventory.Host, runner *runnerArtifact, d *ui.Display) HostResult {
	// A dry run prints into the host's own display so parallel output stays grouped.
	exec := o.exec
	if r, ok := exec.(remote.Redirector); ok {
		exec = r.Redirect(d)
	}

	p := &pipeline{
		o:       o,
		exec:    exec,
		host:    h,
		display: d,
		result:  HostResult{Host: h.Hostname(), State: StateIdle},
	}

	start := time.Now()
	d.Host(h.Hostname())

	switch o.opts.Mode {
	case ModePing:
		p.ping(ctx)
	case ModeCommand:
		p.command(ctx)
	default:
		p.deploy(ctx, runner)
	}

	p.result.Duration = time.Since(start)
	if !p.result.Success() {
		o.log.Warn("%s failed: %v", h.Hostname(), p.result.Err)
	}
	return p.result
}

// execute runs one command on exec, bounded by the configured timeout.
func (o *Orchestrator) execute(ctx context.Context, exec remote.Executor, command string, onLine remote.LineFunc) (string, error) {
	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}
	return exec.Execute(ctx, command, onLine)
}
