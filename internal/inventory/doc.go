// Package inventory owns the host and group model for a deployment run.
//
// A Registry holds exactly one *Host per hostname. Loading a set of group
// declarations into a Registry produces a Groups collection in which every
// Group points at the shared Host values, and every Host points back at the
// groups it belongs to:
//
//	reg := inventory.NewRegistry()
//	groups := reg.Load(decl, true, inventory.WithScripts(scripts))
//	hosts, err := inventory.FilterHosts(groups, []string{"web"})
//
// The reserved group name DefaultGroup denotes the implicit group that
// contains every loaded host.
//
// # Matching
//
// Match resolves a search key against the registry: an exact hostname wins,
// otherwise a key containing '*' is treated as a wildcard pattern over the
// full hostname. Keys that match nothing yield an empty result, not an error.
//
// # Ordering
//
// Registry, Groups and Declarations all iterate in insertion order, so a run
// visits hosts in the order they were first declared.
package inventory
