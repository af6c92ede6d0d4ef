package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// GroupInfo describes a group offered in the picker.
type GroupInfo struct {
	Name    string
	Hosts   int
	Scripts int
}

func (g GroupInfo) label() string {
	return fmt.Sprintf("%s (%d hosts, %d scripts)", g.Name, g.Hosts, g.Scripts)
}

// GroupOptions builds the picker options, all unselected.
func GroupOptions(groups []GroupInfo) []huh.Option[string] {
	options := make([]huh.Option[string], len(groups))
	for i, g := range groups {
		options[i] = huh.NewOption(g.label(), g.Name)
	}
	return options
}

// PickGroups asks the user which groups to deploy to.
// An empty selection is returned as an error; deploying to nothing is never intended.
func PickGroups(groups []GroupInfo) ([]string, error) {
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrInvalidArgument,
			"No groups to pick from",
			"Add groups to the hosts section of shellshock.json")
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Deploy to which groups?").
				Options(GroupOptions(groups)...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInvalidArgument,
			"Group picker cancelled",
			"Pass --groups to choose groups without a prompt.")
	}

	if len(selected) == 0 {
		return nil, errors.New(errors.ErrInvalidArgument,
			"No groups selected",
			"Select at least one group with space, then press enter.")
	}
	return selected, nil
}
