package deploy

import (
	"context"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/hashicorp/go-multierror"

	"github.com/rileyhilliard/shellshock/internal/config"
	"github.com/rileyhilliard/shellshock/internal/errors"
	"github.com/rileyhilliard/shellshock/internal/inventory"
	"github.com/rileyhilliard/shellshock/internal/remote"
	"github.com/rileyhilliard/shellshock/internal/ui"
)

// pipeline drives one host through its phases.
type pipeline struct {
	o       *Orchestrator
	exec    remote.Executor
	host    *inventory.Host
	display *ui.Display
	result  HostResult
	errs    *multierror.Error
	outputs []string
}

func (p *pipeline) transition(next State) {
	if err := Transition(&p.result.State, next); err != nil {
		// Only reachable through a programming error in the phase order.
		p.o.log.Error("%s: %v", p.host.Hostname(), err)
		p.result.State = StateFailed
	}
}

// fail records err against phase. The first failed phase wins.
func (p *pipeline) fail(phase Phase, err error) {
	if p.result.FailedPhase == PhaseNone {
		p.result.FailedPhase = phase
	}
	p.errs = multierror.Append(p.errs, err)
}

func (p *pipeline) finish(outcome Outcome) {
	p.result.Err = p.errs.ErrorOrNil()
	p.result.Output = strings.Join(p.outputs, "\n")
	if p.result.Err == nil && outcome == OutcomeSuccess {
		p.transition(StateDone)
		p.result.Outcome = OutcomeSuccess
		return
	}
	p.result.State = StateFailed
	if outcome == OutcomeSuccess {
		outcome = OutcomeFailed
	}
	p.result.Outcome = outcome
}

// run executes one phase command and records its output.
func (p *pipeline) run(ctx context.Context, command string, onLine remote.LineFunc) (string, error) {
	p.o.log.Debug("%s: %s", p.host.Hostname(), command)
	out, err := p.o.execute(ctx, p.exec, command, onLine)
	if out != "" {
		p.outputs = append(p.outputs, out)
	}
	return out, err
}

func (p *pipeline) deploy(ctx context.Context, runner *runnerArtifact) {
	if !p.upload(ctx, runner) {
		p.display.Skipped("Run scripts", "upload failed")
		p.display.Skipped("Cleanup", "upload failed")
		p.finish(OutcomeFailed)
		return
	}
	p.execute(ctx, runner)
	p.cleanup(ctx)
	p.finish(OutcomeSuccess)
}

func (p *pipeline) upload(ctx context.Context, runner *runnerArtifact) bool {
	p.transition(StateUploading)
	start := time.Now()
	b := p.o.builder
	dir := p.host.RemoteDir()

	mkdir := b.SSH(p.host, "mkdir -p "+shellescape.Quote(dir), false)
	out, err := p.run(ctx, mkdir, nil)
	if err == nil {
		p.verbose(out)
		base := p.o.opts.BaseDir
		from := []string{
			runner.Path(),
			filepath.Join(base, config.FilesDir),
			filepath.Join(base, config.ScriptsDir),
		}
		out, err = p.run(ctx, b.SCP(p.host, from, dir), nil)
		p.verbose(out)
	}

	if err != nil {
		p.display.Fail("Upload failed", time.Since(start), err)
		p.fail(PhaseUpload, errors.WrapWithCode(err, errors.ErrExec,
			"Upload to "+p.host.Hostname()+" failed", ""))
		p.transition(StateFailed)
		return false
	}
	p.display.Success("Uploaded files", time.Since(start))
	return true
}

func (p *pipeline) execute(ctx context.Context, runner *runnerArtifact) {
	p.transition(StateExecuting)
	start := time.Now()

	scripts := p.host.Scripts()
	if len(p.o.opts.Scripts) > 0 {
		scripts = p.o.opts.Scripts
	}

	command := runnerCommand(path.Join(p.host.RemoteDir(), runner.Name()),
		p.host.Username(), p.host.GroupNames(), scripts)

	out, err := p.run(ctx, p.o.builder.SSH(p.host, command, true), p.onLine)
	p.verbose(out)
	if err != nil {
		p.display.Fail("Scripts failed", time.Since(start), err)
		p.fail(PhaseExecute, errors.WrapWithCode(err, errors.ErrExec,
			"Scripts failed on "+p.host.Hostname(), ""))
		return
	}
	p.display.Success("Ran scripts", time.Since(start))
}

// cleanupGrace bounds cleanup once the run has been interrupted.
const cleanupGrace = 30 * time.Second

func (p *pipeline) cleanup(ctx context.Context) {
	p.transition(StateCleaningUp)
	start := time.Now()

	// The remote dir exists whatever happened while executing; an interrupt
	// must not stop it from being removed.
	interrupted := ctx.Err() != nil
	ctx = context.WithoutCancel(ctx)
	if interrupted && p.o.opts.Timeout <= 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cleanupGrace)
		defer cancel()
	}

	rm := p.o.builder.SSH(p.host, "rm -rf "+shellescape.Quote(p.host.RemoteDir()), false)
	out, err := p.run(ctx, rm, nil)
	p.verbose(out)
	if err != nil {
		p.display.Fail("Cleanup failed", time.Since(start), err)
		p.fail(PhaseCleanup, errors.WrapWithCode(err, errors.ErrExec,
			"Cleanup on "+p.host.Hostname()+" failed",
			"Remove "+p.host.RemoteDir()+" by hand"))
		return
	}
	p.display.Success("Cleaned up", time.Since(start))
}

func (p *pipeline) ping(ctx context.Context) {
	p.transition(StateExecuting)
	start := time.Now()

	out, err := p.run(ctx, p.o.builder.SSH(p.host, PingCommand, false), nil)
	switch {
	case err != nil:
		p.display.Fail("Unreachable", time.Since(start), err)
		p.fail(PhaseExecute, errors.WrapWithCode(err, errors.ErrSSH,
			p.host.Hostname()+" is unreachable", ""))
		p.finish(OutcomeUnreachable)
	case !p.o.opts.DryRun && strings.TrimSpace(out) != PingResponse:
		err := errors.New(errors.ErrExec,
			"Unexpected response from "+p.host.Hostname()+": "+quoteResponse(out), "")
		p.display.Fail("Unexpected response", time.Since(start), err)
		p.fail(PhaseExecute, err)
		p.finish(OutcomeUnexpectedResponse)
	default:
		p.display.Success("Reachable", time.Since(start))
		p.finish(OutcomeSuccess)
	}
}

func (p *pipeline) command(ctx context.Context) {
	p.transition(StateExecuting)
	start := time.Now()

	out, err := p.run(ctx, p.o.builder.SSH(p.host, p.o.opts.Command, false), nil)
	p.display.Output(out)
	if err != nil {
		p.display.Fail("Command failed", time.Since(start), err)
		p.fail(PhaseExecute, err)
		p.finish(OutcomeFailed)
		return
	}
	p.display.Success("Command finished", time.Since(start))
	p.finish(OutcomeSuccess)
}

func (p *pipeline) onLine(l remote.Line) {
	switch l.Kind {
	case remote.LineRunning:
		p.display.Running(l.Text)
	case remote.LineError:
		p.display.ScriptError(l.Text)
	}
}

func (p *pipeline) verbose(out string) {
	if p.o.opts.Verbose {
		p.display.Output(out)
	}
}

// runnerCommand builds the remote invocation of the runner:
// bash <runner> <username> <groups, newline separated> [scripts...]
func runnerCommand(runnerPath, username string, groups, scripts []string) string {
	args := make([]string, 0, 4+len(scripts))
	args = append(args, "bash", shellescape.Quote(runnerPath),
		shellescape.Quote(username), shellescape.Quote(strings.Join(groups, "\n")))
	for _, s := range scripts {
		args = append(args, shellescape.Quote(s))
	}
	return strings.Join(args, " ")
}

func quoteResponse(out string) string {
	out = strings.TrimSpace(out)
	if out == "" {
		return "(no output)"
	}
	return `"` + out + `"`
}
