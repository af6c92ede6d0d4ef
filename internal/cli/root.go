package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/shellshock/internal/config"
	"github.com/rileyhilliard/shellshock/internal/errors"
	"github.com/rileyhilliard/shellshock/internal/logger"
	"github.com/rileyhilliard/shellshock/internal/remote"
	"github.com/rileyhilliard/shellshock/internal/ui"
)

// Env holds everything a command touches outside the process.
type Env struct {
	Fs    afero.Fs
	Paths config.Paths
	Out   io.Writer
	Err   io.Writer
	Log   logger.Logger

	// NewExecutor returns the executor for a run. dryRun means print, don't run.
	NewExecutor func(dryRun bool) remote.Executor

	// PickGroups prompts for the groups to deploy to (--select).
	PickGroups func(groups []ui.GroupInfo) ([]string, error)
}

// DefaultEnv returns an Env backed by the real filesystem, terminal and ssh.
func DefaultEnv() (*Env, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, err
	}

	log := logger.NewEnvLogger("[shellshock]")
	agent := remote.NewAgentSession(remote.WithAgentLogger(log))

	env := &Env{
		Fs:         afero.NewOsFs(),
		Paths:      paths,
		Out:        os.Stdout,
		Err:        os.Stderr,
		Log:        log,
		PickGroups: ui.PickGroups,
	}
	env.NewExecutor = func(dryRun bool) remote.Executor {
		if dryRun {
			return remote.NewDryRunExecutor(env.Out)
		}
		return remote.NewShellExecutor(
			remote.WithEnviron(agent),
			remote.WithLogger(log),
		)
	}
	return env, nil
}

// NewRootCmd builds the command tree around env.
func NewRootCmd(env *Env) *cobra.Command {
	flags := &DeployFlags{}

	root := &cobra.Command{
		Use:   "shellshock <path>",
		Short: "Deploy scripts and files to groups of hosts over ssh",
		Long: `Deploy a shellshock directory to the hosts declared in its config.

For every host, shellshock uploads the runner, files/ and scripts/ into a
temporary directory, runs the scripts for the host's groups, then removes
the directory again. A failing host never stops the others.

Examples:
  shellshock ./deploy
  shellshock ./deploy --groups web,db
  shellshock ./deploy --scripts nginx.sh --safety
  shellshock ./deploy --ping
  shellshock ./deploy --command "uptime" --parallel 4`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), env, cmd, flags, args[0])
		},
	}

	root.SetOut(env.Out)
	root.SetErr(env.Err)

	root.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "print debug logs (same as SHELLSHOCK_DEBUG=1)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flags.Debug {
			logger.EnableDebug(true)
		}
	}

	AddDeployFlags(root, flags)

	root.AddCommand(newHostsCmd(env))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	env, err := DefaultEnv()
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ExecuteContext(ctx, env, os.Args[1:])
}

// ExecuteContext runs the command tree with args and maps the result to an exit code.
func ExecuteContext(ctx context.Context, env *Env, args []string) int {
	root := NewRootCmd(env)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *errors.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprint(env.Err, err.Error())
	if _, ok := err.(*errors.Error); !ok {
		fmt.Fprintln(env.Err)
	}
	return 1
}
