// Package sshutil reads the local OpenSSH client setup: ~/.ssh/config entries
// and private key files. shellshock shells out to ssh, so these are only used
// to report what ssh will do for each host.
package sshutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kevinburke/ssh_config"
	"github.com/spf13/afero"
)

// Entry is what ~/.ssh/config says about one host alias.
type Entry struct {
	Alias        string // The name looked up
	Hostname     string // HostName, the actual host to connect to
	User         string
	Port         string
	IdentityFile string
}

// Description returns a user-friendly description of the entry.
func (e Entry) Description() string {
	parts := []string{}

	if e.Hostname != "" && e.Hostname != e.Alias {
		parts = append(parts, e.Hostname)
	}

	if e.User != "" {
		parts = append(parts, "user: "+e.User)
	}

	if e.Port != "" && e.Port != "22" {
		parts = append(parts, "port: "+e.Port)
	}

	if len(parts) == 0 {
		return "-"
	}

	return strings.Join(parts, ", ")
}

// Config is a parsed ssh client config. The zero value has no entries.
type Config struct {
	cfg  *ssh_config.Config
	home string

	// MatchLine is the 1-indexed line of the first Match directive, or 0.
	// Everything from there on is ignored.
	MatchLine int
}

// DefaultConfigPath returns ~/.ssh/config under home.
func DefaultConfigPath(home string) string {
	return filepath.Join(home, ".ssh", "config")
}

// LoadConfig parses the ssh config at path. A missing file yields an empty Config.
// home is used to expand ~ in IdentityFile values.
func LoadConfig(fs afero.Fs, path, home string) (*Config, error) {
	content, matchLine, err := preprocessSSHConfig(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{home: home}, nil // No SSH config is fine
		}
		return nil, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return &Config{cfg: cfg, home: home, MatchLine: matchLine}, nil
}

// Lookup returns the settings ssh would use for alias, wildcard blocks included.
func (c *Config) Lookup(alias string) Entry {
	entry := Entry{Alias: alias}
	if c == nil || c.cfg == nil {
		return entry
	}

	entry.Hostname, _ = c.cfg.Get(alias, "HostName")
	entry.User, _ = c.cfg.Get(alias, "User")
	entry.Port, _ = c.cfg.Get(alias, "Port")
	if identity, _ := c.cfg.Get(alias, "IdentityFile"); identity != "" {
		entry.IdentityFile = expandPath(c.home, identity)
	}
	return entry
}

// Aliases returns the concrete host aliases, sorted. Wildcard patterns are skipped.
func (c *Config) Aliases() []string {
	if c == nil || c.cfg == nil {
		return nil
	}

	var aliases []string
	seen := make(map[string]bool)
	for _, host := range c.cfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()
			if strings.ContainsAny(alias, "*?!") || seen[alias] {
				continue
			}
			seen[alias] = true
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return aliases
}

// preprocessSSHConfig returns the config content up to the first Match
// directive, which ssh_config can't parse, and that directive's line number.
func preprocessSSHConfig(fs afero.Fs, configPath string) ([]byte, int, error) {
	content, err := afero.ReadFile(fs, configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	matchLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			matchLine = i + 1
			break
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), matchLine, nil
}

func expandPath(home, path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
