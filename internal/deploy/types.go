package deploy

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// Mode selects what the orchestrator does on each host.
type Mode int

const (
	// ModeDeploy uploads the runner and payload, runs scripts, then cleans up.
	ModeDeploy Mode = iota
	// ModePing checks each host answers a trivial command.
	ModePing
	// ModeCommand runs one ad-hoc command on each host.
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModePing:
		return "ping"
	case ModeCommand:
		return "command"
	default:
		return "deploy"
	}
}

// PingCommand is sent to every host in ping mode; the reply must be PingResponse.
const (
	PingCommand  = `echo "success"`
	PingResponse = "success"
)

// Options controls a run.
type Options struct {
	Mode Mode

	// BaseDir is the local shellshock directory holding files/ and scripts/.
	BaseDir string

	// Scripts, when non-empty, replaces every host's group-derived script list.
	Scripts []string

	// Command is the ad-hoc command for ModeCommand.
	Command string

	// DryRun means the executor only prints commands; responses aren't checked.
	DryRun bool

	// Timeout bounds each remote command. Zero waits indefinitely.
	Timeout time.Duration

	// Parallel is how many hosts run at once. Values below 2 run sequentially.
	Parallel int

	// Verbose shows the output of every phase, not just the scripts.
	Verbose bool
}

// Outcome classifies how a host's run ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	// OutcomeFailed means a pipeline phase or the ad-hoc command failed.
	OutcomeFailed
	// OutcomeUnexpectedResponse means a ping reply was missing or wrong.
	OutcomeUnexpectedResponse
	// OutcomeUnreachable means the ping command itself failed.
	OutcomeUnreachable
	// OutcomeCancelled means the run was interrupted before the host started.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	case OutcomeUnexpectedResponse:
		return "unexpected response"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// HostResult is the outcome of one host's pipeline.
type HostResult struct {
	Host        string
	State       State
	FailedPhase Phase // first phase that failed
	Outcome     Outcome
	Err         error // every phase error, joined
	Output      string
	Duration    time.Duration
}

// Success returns true if every phase succeeded.
func (r HostResult) Success() bool {
	return r.State == StateDone
}

// Report holds the per-host results of a run, in host order.
type Report struct {
	Mode     Mode
	DryRun   bool
	Results  []HostResult
	Duration time.Duration
}

// Succeeded returns the hostnames that completed successfully.
func (r *Report) Succeeded() []string {
	return lo.FilterMap(r.Results, func(hr HostResult, _ int) (string, bool) {
		return hr.Host, hr.Success()
	})
}

// Failed returns the hostnames that failed.
func (r *Report) Failed() []string {
	return lo.FilterMap(r.Results, func(hr HostResult, _ int) (string, bool) {
		return hr.Host, !hr.Success()
	})
}

// Result returns the result for hostname.
func (r *Report) Result(hostname string) (HostResult, bool) {
	return lo.Find(r.Results, func(hr HostResult) bool {
		return hr.Host == hostname
	})
}

// Err aggregates every host failure, or returns nil when all hosts succeeded.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, hr := range r.Results {
		if hr.Success() {
			continue
		}
		err := hr.Err
		if err == nil {
			err = fmt.Errorf("%s", hr.Outcome)
		}
		result = multierror.Append(result, fmt.Errorf("%s: %w", hr.Host, err))
	}
	return result.ErrorOrNil()
}
