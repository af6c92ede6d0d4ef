package connection

import (
	"sort"

	"github.com/rileyhilliard/shellshock/internal/inventory"
	"github.com/rileyhilliard/shellshock/internal/logger"
)

// Resolver applies a Collection to the hosts of a Registry.
type Resolver struct {
	paths PathNormalizer
	log   logger.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = l
	}
}

// NewResolver creates a resolver. paths normalizes private-key values and may be nil.
func NewResolver(paths PathNormalizer, opts ...ResolverOption) *Resolver {
	r := &Resolver{paths: paths, log: logger.Noop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve applies the collection to every host in reg.
//
// DefaultKey is applied to all hosts first. Every other key, in declaration
// order, is resolved through its references and applied to the hosts it
// matches. Keys matching no host are skipped; they may exist only to be
// referenced. Reference errors are reported even for skipped keys.
func (r *Resolver) Resolve(c *Collection, reg *inventory.Registry) error {
	if c == nil {
		return nil
	}

	if _, ok := c.Get(DefaultKey); ok {
		rec, err := Follow(c, DefaultKey)
		if err != nil {
			return err
		}
		r.warnUnknown(DefaultKey, rec)
		if err := r.applyAll(rec, reg.Hosts()); err != nil {
			return err
		}
		r.log.Debug("applied %s settings to %d hosts", DefaultKey, reg.Len())
	}

	for _, key := range c.Keys() {
		if key == DefaultKey {
			continue
		}

		rec, err := Follow(c, key)
		if err != nil {
			return err
		}

		hosts := inventory.Match(key, reg)
		if len(hosts) == 0 {
			r.log.Debug("connection settings %q match no hosts, skipping", key)
			continue
		}

		r.warnUnknown(key, rec)
		if err := r.applyAll(rec, hosts); err != nil {
			return err
		}
		r.log.Debug("applied %q settings to %d hosts", key, len(hosts))
	}

	return nil
}

func (r *Resolver) applyAll(rec Record, hosts []*inventory.Host) error {
	for _, h := range hosts {
		if err := Apply(rec, h, r.paths); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) warnUnknown(key string, rec Record) {
	var unknown []string
	for name := range rec {
		if !IsKnownOption(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	r.log.Warn("connection settings %q: ignoring unknown options %v", key, unknown)
}

// Resolve is a convenience wrapper around NewResolver(paths).Resolve.
func Resolve(c *Collection, reg *inventory.Registry, paths PathNormalizer) error {
	return NewResolver(paths).Resolve(c, reg)
}
