package remote

import (
	"regexp"
	"strings"
)

var knownHostsWarning = regexp.MustCompile(`^Warning: Permanently added '[^']+' \(\w+\) to the list of known hosts\.$`)

// FilterStderr trims stderr, drops blank lines and removes a leading ssh
// "Permanently added ... to the list of known hosts" warning.
//
// ignorable is true when that warning was the only thing on stderr, in which
// case a non-zero exit is not treated as a failure.
func FilterStderr(stderr string) (filtered string, ignorable bool) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > 0 && knownHostsWarning.MatchString(lines[0]) {
		lines = lines[1:]
		ignorable = len(lines) == 0
	}

	return strings.Join(lines, "\n"), ignorable
}
