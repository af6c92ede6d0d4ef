package connection

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// MaxDepth is the longest reference chain Follow will walk.
const MaxDepth = 10

// Follow resolves the entry stored under key to a literal record, walking
// references until one names a literal.
//
// A reference back into the current chain fails with ErrRecursiveReference,
// a chain longer than MaxDepth fails with ErrExcessiveIndirection, and a
// reference to a missing key fails with ErrUnknownReference.
func Follow(c *Collection, key string) (Record, error) {
	entry, ok := c.Get(key)
	if !ok {
		return nil, unknownReference(key, []string{key})
	}
	return follow(c, key, entry)
}

func follow(c *Collection, key string, entry Entry) (Record, error) {
	stack := []string{key}
	visited := map[string]bool{key: true}

	for entry.IsReference() {
		next := entry.Ref

		if visited[next] {
			return nil, errors.WrapWithCode(errors.ErrRecursiveReference, errors.ErrResolution,
				fmt.Sprintf("Recursive connection importing detected: %s", chain(append(stack, next))),
				"Break the cycle by giving one of these entries literal settings.")
		}

		if len(stack) > MaxDepth {
			return nil, errors.WrapWithCode(errors.ErrExcessiveIndirection, errors.ErrResolution,
				fmt.Sprintf("Too many reference levels resolving %q (max %d)", key, MaxDepth),
				"Point the entry closer to the settings it uses.")
		}

		target, ok := c.Get(next)
		if !ok {
			return nil, unknownReference(next, append(stack, next))
		}

		stack = append(stack, next)
		visited[next] = true
		entry = target
	}

	return entry.Record, nil
}

func unknownReference(key string, stack []string) error {
	return errors.WrapWithCode(errors.ErrUnknownReference, errors.ErrResolution,
		fmt.Sprintf("Unknown connection settings %q (%s)", key, chain(stack)),
		"Check the name is spelled the same as a key in connections.")
}

func chain(keys []string) string {
	return strings.Join(keys, " -> ")
}
