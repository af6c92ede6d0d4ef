package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/shellshock/internal/config"
	"github.com/rileyhilliard/shellshock/internal/deploy"
	"github.com/rileyhilliard/shellshock/internal/errors"
)

// DeployFlags holds the flags of the root (deploy) command.
// timeout, parallel, verbose and color are read through the config loader,
// which layers them over the file and environment.
type DeployFlags struct {
	Config  string
	Groups  string
	Scripts string
	Command string
	Ping    bool
	Safety  bool
	Select  bool
	NoColor bool
	Debug   bool
}

// AddDeployFlags registers the deploy flags on cmd.
func AddDeployFlags(cmd *cobra.Command, flags *DeployFlags) {
	addInventoryFlags(cmd, flags)

	f := cmd.Flags()
	f.StringVar(&flags.Scripts, "scripts", "", "comma separated scripts to run instead of each host's group scripts")
	f.StringVar(&flags.Command, "command", "", "run this command on every host instead of deploying")
	f.BoolVar(&flags.Ping, "ping", false, "check every host answers instead of deploying")
	f.BoolVar(&flags.Safety, "safety", false, "print the commands that would run, without running any")
	f.BoolVar(&flags.Select, "select", false, "pick the groups to deploy to interactively")
	f.BoolVarP(new(bool), "verbose", "v", false, "show output from every step")
	f.String("timeout", "", "limit each remote command (e.g. 30s, 5m); 0 waits forever")
	f.Int("parallel", config.DefaultOptions().Parallel, "number of hosts to deploy at once")
	f.String("color", config.ColorAuto, "color output: auto, always or never")
	f.BoolVar(&flags.NoColor, "no-color", false, "disable color output")
}

// addInventoryFlags registers the flags every inventory-loading command shares.
func addInventoryFlags(cmd *cobra.Command, flags *DeployFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.Config, "config", "c", "", "config file (default <path>/shellshock.json)")
	f.StringVarP(&flags.Groups, "groups", "g", "", "comma separated groups to include (default all)")
}

// Mode returns the run mode the flags select.
func (f *DeployFlags) Mode() (deploy.Mode, error) {
	switch {
	case f.Command != "" && f.Ping:
		return 0, errors.New(errors.ErrInvalidArgument,
			"--command and --ping can't be used together",
			"Use --ping to check connectivity, or --command to run something, but not both.")
	case f.Command != "":
		return deploy.ModeCommand, nil
	case f.Ping:
		return deploy.ModePing, nil
	default:
		return deploy.ModeDeploy, nil
	}
}

// ColorMode returns the color mode after --no-color is applied.
func (f *DeployFlags) ColorMode(configured string) string {
	if f.NoColor {
		return config.ColorNever
	}
	return configured
}
