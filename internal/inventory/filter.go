package inventory

import (
	"fmt"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// FilterHosts returns the deduplicated union of hosts in the named groups.
// With no names, every group in groups contributes. Hosts appear in the order
// they are first seen.
func FilterHosts(groups *Groups, names []string) ([]*Host, error) {
	selected := names
	if len(selected) == 0 {
		selected = groups.Names()
	}

	var filtered []*Group
	for _, name := range selected {
		group, ok := groups.Get(name)
		if !ok {
			return nil, errors.WrapWithCode(errors.ErrUnknownGroup, errors.ErrInvalidArgument,
				fmt.Sprintf("Unknown group %q", name),
				fmt.Sprintf("Known groups: %v", groups.Names()))
		}
		if group == nil {
			return nil, errors.WrapWithCode(errors.ErrInvalidGroup, errors.ErrInvalidArgument,
				fmt.Sprintf("Group %q is not a valid group", name),
				"This is a bug in how groups were loaded - please report it.")
		}
		filtered = append(filtered, group)
	}

	seen := make(map[*Host]bool)
	var hosts []*Host
	for _, group := range filtered {
		for _, host := range group.Hosts() {
			if seen[host] {
				continue
			}
			seen[host] = true
			hosts = append(hosts, host)
		}
	}
	return hosts, nil
}
