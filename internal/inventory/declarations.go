package inventory

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Declarations is the raw, ordered group name -> hostnames input to Registry.Load.
type Declarations struct {
	m *orderedmap.OrderedMap[string, []string]
}

// NewDeclarations creates an empty set of declarations.
func NewDeclarations() *Declarations {
	return &Declarations{m: orderedmap.New[string, []string]()}
}

// Add appends hostnames to group, declaring the group if it is new.
func (d *Declarations) Add(group string, hostnames ...string) *Declarations {
	existing, _ := d.m.Get(group)
	d.m.Set(group, append(existing, hostnames...))
	return d
}

// Groups returns the declared group names in declaration order.
func (d *Declarations) Groups() []string {
	names := make([]string, 0, d.m.Len())
	for pair := d.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Hostnames returns the hostnames declared for group.
func (d *Declarations) Hostnames(group string) []string {
	hosts, _ := d.m.Get(group)
	return hosts
}

// Len returns the number of declared groups.
func (d *Declarations) Len() int { return d.m.Len() }
