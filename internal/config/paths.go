package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// Paths carries the process-wide locations used to normalize user supplied paths.
type Paths struct {
	Home string
	Cwd  string
}

// DefaultPaths returns the current user's home directory and working directory.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, errors.WrapWithCode(err, errors.ErrValidation,
			"Cannot determine home directory",
			"Set the HOME environment variable")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return Paths{}, errors.WrapWithCode(err, errors.ErrValidation,
			"Cannot determine current directory",
			"Check directory permissions")
	}
	return Paths{Home: home, Cwd: cwd}, nil
}

// Normalize turns path into an absolute local path.
// ~ and ~/path expand to the home directory; relative paths are joined to Cwd.
// Does not support ~username syntax.
func (p Paths) Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidArgument,
			"Path can't be empty",
			"Pass a directory or file path")
	}

	switch {
	case path == "~":
		return filepath.Clean(p.Home), nil
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(p.Home, path[2:]), nil
	case filepath.IsAbs(path):
		return filepath.Clean(path), nil
	default:
		return filepath.Join(p.Cwd, path), nil
	}
}
