package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// GroupSettings is the content of settings/<group>.json.
type GroupSettings struct {
	Scripts []string `yaml:"scripts"`
}

// LoadGroupScripts reads the script list of every named group from
// <base>/settings. A group without a settings file has no scripts.
func (l *Loader) LoadGroupScripts(base string, groups []string) (map[string][]string, error) {
	scripts := make(map[string][]string, len(groups))
	for _, group := range groups {
		if _, seen := scripts[group]; seen {
			continue
		}
		settings, err := l.LoadGroupSettings(base, group)
		if err != nil {
			return nil, err
		}
		scripts[group] = settings.Scripts
	}
	return scripts, nil
}

// LoadGroupSettings reads settings/<group>.json (or .yaml/.yml).
func (l *Loader) LoadGroupSettings(base, group string) (GroupSettings, error) {
	path, ok := l.findGroupSettings(base, group)
	if !ok {
		l.log.Debug("no settings file for group %q", group)
		return GroupSettings{}, nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return GroupSettings{}, errors.WrapWithCode(err, errors.ErrValidation,
			fmt.Sprintf("Cannot read settings for group %q", group),
			"Check permissions on "+path)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil || raw == nil {
		return GroupSettings{}, errors.WrapWithCode(err, errors.ErrValidation,
			fmt.Sprintf("Cannot read settings for group %q", group),
			"Check "+path+" is a valid JSON object")
	}

	node, ok := raw["scripts"]
	if !ok || node.Kind != yaml.SequenceNode {
		return GroupSettings{}, errors.New(errors.ErrValidation,
			fmt.Sprintf("Cannot read scripts in group %q", group),
			"Add \"scripts\": [\"path/in/scripts.sh\"] to "+path)
	}

	var settings GroupSettings
	if err := node.Decode(&settings.Scripts); err != nil {
		return GroupSettings{}, errors.WrapWithCode(err, errors.ErrValidation,
			fmt.Sprintf("Cannot read scripts in group %q", group),
			"Scripts must be a list of paths relative to the scripts directory")
	}
	if settings.Scripts == nil {
		settings.Scripts = []string{}
	}
	return settings, nil
}

func (l *Loader) findGroupSettings(base, group string) (string, bool) {
	for _, ext := range ConfigExtensions {
		path := filepath.Join(base, SettingsDir, group+ext)
		if ok, _ := afero.Exists(l.fs, path); ok {
			return path, true
		}
	}
	return "", false
}
