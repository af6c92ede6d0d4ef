package config

import (
	"time"

	"github.com/rileyhilliard/shellshock/internal/connection"
	"github.com/rileyhilliard/shellshock/internal/inventory"
)

// Config represents a loaded shellshock config file.
type Config struct {
	// Path is the file the config was read from.
	Path string

	// Hosts maps group names to hostnames, in file order.
	Hosts *inventory.Declarations

	// Connections holds connection settings keyed by hostname, pattern or name.
	// Empty (never nil) when the file has no connections section.
	Connections *connection.Collection

	// Options are the runtime options after file, env and flag layering.
	Options Options
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options controls how a run behaves.
type Options struct {
	// Timeout bounds each remote command. Zero waits indefinitely.
	Timeout time.Duration

	// Parallel is how many hosts are deployed at once.
	Parallel int

	// Verbose shows script output for every host.
	Verbose bool

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Timeout:  0,
		Parallel: 1,
		Verbose:  false,
		Color:    ColorAuto,
	}
}
