package inventory

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Registry is the deduplicated hostname -> Host store populated at load time.
type Registry struct {
	hosts *orderedmap.OrderedMap[string, *Host]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{hosts: orderedmap.New[string, *Host]()}
}

// LoadOption configures Registry.Load.
type LoadOption func(*loadContext)

type loadContext struct {
	scripts map[string][]string
}

// WithScripts supplies the declared script list for each group by name.
// Groups without an entry get no scripts.
func WithScripts(scripts map[string][]string) LoadOption {
	return func(c *loadContext) {
		c.scripts = scripts
	}
}

// Load turns raw group declarations into Groups backed by this registry.
//
// Every distinct hostname becomes exactly one Host, shared by all groups that
// declare it. With includeDefault set, every host also joins the DefaultGroup,
// which is stored last in the returned collection.
func (r *Registry) Load(decl *Declarations, includeDefault bool, opts ...LoadOption) *Groups {
	lc := &loadContext{}
	for _, opt := range opts {
		opt(lc)
	}

	groups := NewGroups()

	var defaultGroup *Group
	if includeDefault {
		defaultGroup = NewGroup(DefaultGroup, lc.scripts[DefaultGroup])
	}

	for _, name := range decl.Groups() {
		group, ok := groups.Get(name)
		if !ok {
			if name == DefaultGroup && defaultGroup != nil {
				group = defaultGroup
			} else {
				group = NewGroup(name, lc.scripts[name])
			}
			groups.Put(name, group)
		}

		for _, hostname := range decl.Hostnames(name) {
			host, created := r.getOrCreate(hostname)
			if created && defaultGroup != nil {
				defaultGroup.AddHost(host)
			}
			group.AddHost(host)
		}
	}

	if defaultGroup != nil {
		groups.Put(DefaultGroup, defaultGroup)
	}
	return groups
}

func (r *Registry) getOrCreate(hostname string) (*Host, bool) {
	if host, ok := r.hosts.Get(hostname); ok {
		return host, false
	}
	host := NewHost(hostname)
	r.hosts.Set(hostname, host)
	return host, true
}

// Get returns the host registered under hostname.
func (r *Registry) Get(hostname string) (*Host, bool) {
	return r.hosts.Get(hostname)
}

// Hosts returns every registered host in insertion order.
func (r *Registry) Hosts() []*Host {
	out := make([]*Host, 0, r.hosts.Len())
	for pair := r.hosts.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of registered hosts.
func (r *Registry) Len() int { return r.hosts.Len() }
