package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/shellshock/internal/config"
	"github.com/rileyhilliard/shellshock/internal/inventory"
	"github.com/rileyhilliard/shellshock/internal/ui"
	"github.com/rileyhilliard/shellshock/pkg/sshutil"
)

func newHostsCmd(env *Env) *cobra.Command {
	flags := &DeployFlags{}

	cmd := &cobra.Command{
		Use:   "hosts <path>",
		Short: "Show the resolved host inventory",
		Long: `Load a shellshock directory and list every host with the connection
settings shellshock will use, what ~/.ssh/config adds for it, and whether
its private key can be used without a passphrase.

Nothing is contacted.

Examples:
  shellshock hosts ./deploy
  shellshock hosts ./deploy --groups web`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHosts(env, cmd, flags, args[0])
		},
	}

	addInventoryFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "disable color output")
	return cmd
}

var hostColumns = []ui.TableColumn{
	{Title: "HOST"},
	{Title: "GROUPS"},
	{Title: "USER"},
	{Title: "PORT"},
	{Title: "SUDO"},
	{Title: "KEY"},
	{Title: "SSH CONFIG"},
}

func listHosts(env *Env, cmd *cobra.Command, flags *DeployFlags, path string) error {
	inv, err := loadInventory(env, cmd, flags, path)
	if err != nil {
		return err
	}
	ui.ConfigureColors(flags.ColorMode(inv.Config.Options.Color), env.Out)

	hosts, err := inventory.FilterHosts(inv.Groups, config.ParseList(flags.Groups))
	if err != nil {
		return err
	}

	sshCfg, err := sshutil.LoadConfig(env.Fs, sshutil.DefaultConfigPath(env.Paths.Home), env.Paths.Home)
	if err != nil {
		env.Log.Warn("couldn't read ssh config: %v", err)
	}

	rows := make([][]string, 0, len(hosts))
	for _, h := range hosts {
		rows = append(rows, hostRow(env, h, sshCfg.Lookup(h.Hostname())))
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, lipgloss.NewStyle().Foreground(ui.ColorMuted).Render("No hosts"))
		return nil
	}
	fmt.Fprintln(out, ui.RenderSimpleTable(hostColumns, rows))
	fmt.Fprintf(out, "\n%d hosts in %d groups\n", len(hosts), len(inv.GroupInfos()))
	return nil
}

func hostRow(env *Env, h *inventory.Host, entry sshutil.Entry) []string {
	groups := lo.Filter(h.GroupNames(), func(name string, _ int) bool {
		return name != inventory.DefaultGroup
	})

	user := coalesce(h.Username(), entry.User)
	port := entry.Port
	if h.Port() > 0 {
		port = strconv.Itoa(h.Port())
	}

	sudo := "no"
	if h.UseSudo() {
		sudo = "yes"
		if _, ok := h.SudoPassword(); ok {
			sudo = "password"
		}
	}

	keyPath := coalesce(h.IdentityFile(), entry.IdentityFile)
	status, err := sshutil.InspectKey(env.Fs, keyPath)
	if err != nil {
		env.Log.Debug("%s: key %s: %v", h.Hostname(), keyPath, err)
	}

	return []string{
		h.Hostname(),
		strings.Join(groups, ","),
		coalesce(user, "-"),
		coalesce(port, "-"),
		sudo,
		status.String(),
		entry.Description(),
	}
}

func coalesce(values ...string) string {
	v, _ := lo.Coalesce(values...)
	return v
}
