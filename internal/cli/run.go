package cli

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/shellshock/internal/config"
	"github.com/rileyhilliard/shellshock/internal/connection"
	"github.com/rileyhilliard/shellshock/internal/deploy"
	"github.com/rileyhilliard/shellshock/internal/errors"
	"github.com/rileyhilliard/shellshock/internal/inventory"
	"github.com/rileyhilliard/shellshock/internal/ui"
)

// Inventory is a fully loaded shellshock directory.
type Inventory struct {
	BaseDir  string
	Config   *config.Config
	Registry *inventory.Registry
	Groups   *inventory.Groups
}

// GroupInfos summarizes the declared groups for the picker. The implicit
// default group is left out.
func (inv *Inventory) GroupInfos() []ui.GroupInfo {
	var infos []ui.GroupInfo
	for _, name := range inv.Groups.Names() {
		if name == inventory.DefaultGroup {
			continue
		}
		g, _ := inv.Groups.Get(name)
		infos = append(infos, ui.GroupInfo{Name: name, Hosts: g.Len(), Scripts: len(g.Scripts())})
	}
	return infos
}

// loadInventory runs every load-time step. Errors here abort before any
// host is contacted.
func loadInventory(env *Env, cmd *cobra.Command, flags *DeployFlags, path string) (*Inventory, error) {
	base, err := env.Paths.Normalize(path)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateDir(env.Fs, base); err != nil {
		return nil, err
	}

	loader := config.NewLoader(env.Fs,
		config.WithFlags(cmd.Flags()),
		config.WithLogger(env.Log),
	)

	explicit := ""
	if flags.Config != "" {
		if explicit, err = env.Paths.Normalize(flags.Config); err != nil {
			return nil, err
		}
	}
	cfgPath, err := loader.Find(base, explicit)
	if err != nil {
		return nil, err
	}
	cfg, err := loader.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	env.Log.Debug("loaded %s (%d groups)", cfgPath, cfg.Hosts.Len())

	groupNames := lo.Uniq(append(cfg.Hosts.Groups(), inventory.DefaultGroup))
	scripts, err := loader.LoadGroupScripts(base, groupNames)
	if err != nil {
		return nil, err
	}

	reg := inventory.NewRegistry()
	groups := reg.Load(cfg.Hosts, true, inventory.WithScripts(scripts))

	resolver := connection.NewResolver(env.Paths, connection.WithLogger(env.Log))
	if err := resolver.Resolve(cfg.Connections, reg); err != nil {
		return nil, err
	}

	return &Inventory{BaseDir: base, Config: cfg, Registry: reg, Groups: groups}, nil
}

// selectHosts applies --groups, or the picker with --select.
func selectHosts(env *Env, inv *Inventory, flags *DeployFlags) ([]*inventory.Host, error) {
	names := config.ParseList(flags.Groups)
	if len(names) == 0 && flags.Select {
		picked, err := env.PickGroups(inv.GroupInfos())
		if err != nil {
			return nil, err
		}
		names = picked
	}
	return inventory.FilterHosts(inv.Groups, names)
}

func runDeploy(ctx context.Context, env *Env, cmd *cobra.Command, flags *DeployFlags, path string) error {
	mode, err := flags.Mode()
	if err != nil {
		return err
	}

	inv, err := loadInventory(env, cmd, flags, path)
	if err != nil {
		return err
	}
	opts := inv.Config.Options
	ui.ConfigureColors(flags.ColorMode(opts.Color), env.Out)

	hosts, err := selectHosts(env, inv, flags)
	if err != nil {
		return err
	}
	if len(hosts) == 0 {
		return errors.New(errors.ErrValidation,
			"No hosts to deploy to",
			"Add hostnames to the groups in "+inv.Config.Path)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	orch := deploy.NewOrchestrator(env.NewExecutor(flags.Safety), deploy.Options{
		Mode:     mode,
		BaseDir:  inv.BaseDir,
		Scripts:  config.ParseList(flags.Scripts),
		Command:  flags.Command,
		DryRun:   flags.Safety,
		Timeout:  opts.Timeout,
		Parallel: opts.Parallel,
		Verbose:  opts.Verbose,
	},
		deploy.WithFs(env.Fs),
		deploy.WithOutput(env.Out),
		deploy.WithLogger(env.Log),
	)

	start := time.Now()
	report, err := orch.Run(ctx, hosts)
	if err != nil {
		return err
	}
	env.Log.Debug("%s run finished in %s: %s", mode, time.Since(start), deploy.FormatBriefSummary(report))

	deploy.RenderSummary(env.Out, report)
	if len(report.Failed()) > 0 {
		return errors.NewExitError(1)
	}
	return nil
}
