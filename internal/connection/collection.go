// Package connection resolves declarative connection settings into per-host
// connection attributes.
//
// A Collection maps a key (a hostname, a wildcard pattern, or an arbitrary
// name) to an Entry. An Entry is either a literal Record of options or a
// reference to another key. The reserved DefaultKey applies to every host
// before any other entry is considered.
package connection

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// DefaultKey holds settings applied to every host before named entries.
const DefaultKey = "_default"

// Record is a literal settings record: option name -> value.
type Record map[string]any

// Entry is a literal Record or a reference to another key in the collection.
type Entry struct {
	Record Record
	Ref    string
	isRef  bool
}

// Literal wraps a record as an entry.
func Literal(r Record) Entry {
	if r == nil {
		r = Record{}
	}
	return Entry{Record: r}
}

// Reference creates an entry pointing at another key.
func Reference(key string) Entry {
	return Entry{Ref: key, isRef: true}
}

// IsReference reports whether the entry names another key.
func (e Entry) IsReference() bool { return e.isRef }

// UnmarshalYAML accepts a mapping (literal) or a string (reference).
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return fmt.Errorf("line %d: connection settings can't be empty", node.Line)
		}
		var ref string
		if err := node.Decode(&ref); err != nil {
			return err
		}
		*e = Reference(ref)
		return nil
	case yaml.MappingNode:
		var rec Record
		if err := node.Decode(&rec); err != nil {
			return err
		}
		*e = Literal(rec)
		return nil
	default:
		return fmt.Errorf("line %d: connection settings must be a mapping or the name of other settings", node.Line)
	}
}

// Collection is an insertion-ordered set of connection settings entries.
type Collection struct {
	m *orderedmap.OrderedMap[string, Entry]
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{m: orderedmap.New[string, Entry]()}
}

// Set stores entry under key.
func (c *Collection) Set(key string, entry Entry) *Collection {
	c.m.Set(key, entry)
	return c
}

// Get returns the entry stored under key.
func (c *Collection) Get(key string) (Entry, bool) {
	return c.m.Get(key)
}

// Keys returns the keys in declaration order.
func (c *Collection) Keys() []string {
	keys := make([]string, 0, c.m.Len())
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of entries.
func (c *Collection) Len() int { return c.m.Len() }

// UnmarshalYAML decodes a mapping of key -> entry, keeping declaration order.
func (c *Collection) UnmarshalYAML(node *yaml.Node) error {
	if c.m == nil {
		c.m = orderedmap.New[string, Entry]()
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.New(errors.ErrValidation,
			fmt.Sprintf("line %d: connections must be a mapping", node.Line),
			"Map host names or patterns to settings, e.g. \"connections\": {\"_default\": {\"user\": \"deploy\"}}")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		var entry Entry
		if err := entry.UnmarshalYAML(node.Content[i+1]); err != nil {
			return errors.WrapWithCode(err, errors.ErrValidation,
				fmt.Sprintf("Invalid connection settings for %q", key),
				"Use a mapping of options or the name of other settings.")
		}
		c.m.Set(key, entry)
	}
	return nil
}
