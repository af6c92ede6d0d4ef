package inventory

import (
	"github.com/samber/lo"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultGroup is the reserved name of the implicit group containing every host.
const DefaultGroup = "_default"

// Group is a named set of hosts sharing a declared script list.
type Group struct {
	name    string
	scripts []string
	hosts   []*Host
}

// NewGroup creates a group. The script list is copied and never changes afterwards.
func NewGroup(name string, scripts []string) *Group {
	s := make([]string, len(scripts))
	copy(s, scripts)
	return &Group{name: name, scripts: s}
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Scripts returns a copy of the group's declared script paths.
func (g *Group) Scripts() []string {
	out := make([]string, len(g.scripts))
	copy(out, g.scripts)
	return out
}

// Hosts returns the group's hosts in the order they were added.
func (g *Group) Hosts() []*Host {
	out := make([]*Host, len(g.hosts))
	copy(out, g.hosts)
	return out
}

// Len returns the number of hosts in the group.
func (g *Group) Len() int { return len(g.hosts) }

// Contains reports whether this exact Host value is in the group.
func (g *Group) Contains(h *Host) bool {
	return lo.Contains(g.hosts, h)
}

// AddHost links h into the group. It is a no-op when h is already present.
// The host picks up the group's scripts and a back-reference to the group.
func (g *Group) AddHost(h *Host) {
	if g.Contains(h) {
		return
	}
	g.hosts = append(g.hosts, h)
	h.addScripts(g.scripts)
	h.addGroup(g)
}

// Groups is an insertion-ordered collection of groups keyed by name.
type Groups struct {
	m *orderedmap.OrderedMap[string, *Group]
}

// NewGroups creates an empty collection.
func NewGroups() *Groups {
	return &Groups{m: orderedmap.New[string, *Group]()}
}

// Put stores g under name, replacing any previous entry but keeping its position.
func (gs *Groups) Put(name string, g *Group) {
	gs.m.Set(name, g)
}

// Get returns the group stored under name.
func (gs *Groups) Get(name string) (*Group, bool) {
	return gs.m.Get(name)
}

// Names returns the group names in insertion order.
func (gs *Groups) Names() []string {
	names := make([]string, 0, gs.m.Len())
	for pair := gs.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of groups.
func (gs *Groups) Len() int { return gs.m.Len() }
