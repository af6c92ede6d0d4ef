package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// Layout of a shellshock directory.
const (
	FilesDir    = "files"
	ScriptsDir  = "scripts"
	SettingsDir = "settings"
)

// RequiredDirs must all exist inside a shellshock directory.
var RequiredDirs = []string{FilesDir, ScriptsDir, SettingsDir}

// ValidateDir checks that base is a directory containing every RequiredDirs entry.
func ValidateDir(fs afero.Fs, base string) error {
	ok, err := afero.IsDir(fs, base)
	if err != nil || !ok {
		return errors.WrapWithCode(err, errors.ErrInvalidArgument,
			fmt.Sprintf("%s is not a directory", base),
			"Pass the path to your shellshock directory")
	}

	for _, name := range RequiredDirs {
		path := filepath.Join(base, name)
		if ok, _ := afero.IsDir(fs, path); !ok {
			return errors.New(errors.ErrInvalidArgument,
				fmt.Sprintf("Shellshock directory is missing %q", name),
				fmt.Sprintf("Create %s, or check you passed the right path", path))
		}
	}

	return nil
}

// ValidateOptions checks runtime options for values that can't work.
func ValidateOptions(opts Options) error {
	if opts.Parallel < 1 {
		return errors.New(errors.ErrInvalidArgument,
			fmt.Sprintf("Parallel must be at least 1, got %d", opts.Parallel),
			"Use --parallel 1 to deploy one host at a time")
	}

	if opts.Timeout < 0 {
		return errors.New(errors.ErrInvalidArgument,
			fmt.Sprintf("Timeout can't be negative, got %s", opts.Timeout),
			"Use --timeout 0 to wait indefinitely")
	}

	switch opts.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(errors.ErrInvalidArgument,
			fmt.Sprintf("Unknown color mode %q", opts.Color),
			"Use one of: auto, always, never")
	}

	return nil
}
