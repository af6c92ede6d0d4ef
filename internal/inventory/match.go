package inventory

import (
	"regexp"
	"strings"
)

// Wildcard is the character that turns a search key into a pattern.
const Wildcard = "*"

// Match returns the hosts designated by key.
//
// An exact hostname yields that single host. Otherwise a key containing '*'
// matches every host whose full name fits the pattern, where '*' stands for
// any substring (including empty) and every other character is literal.
// Anything else yields nil; such keys may exist only to be referenced.
func Match(key string, r *Registry) []*Host {
	if host, ok := r.Get(key); ok {
		return []*Host{host}
	}

	if !strings.Contains(key, Wildcard) {
		return nil
	}

	pattern := compileWildcard(key)

	var matched []*Host
	for _, host := range r.Hosts() {
		if pattern.MatchString(host.Hostname()) {
			matched = append(matched, host)
		}
	}
	return matched
}

func compileWildcard(key string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(key)
	return regexp.MustCompile("^" + strings.ReplaceAll(quoted, `\*`, ".*") + "$")
}
