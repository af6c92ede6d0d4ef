package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/shellshock/internal/connection"
	"github.com/rileyhilliard/shellshock/internal/errors"
	"github.com/rileyhilliard/shellshock/internal/inventory"
	"github.com/rileyhilliard/shellshock/internal/logger"
)

const (
	// ConfigBaseName is the config file name without extension.
	ConfigBaseName = "shellshock"
	// EnvPrefix prefixes environment variables that override options.
	EnvPrefix = "SHELLSHOCK"
)

// ConfigExtensions are tried in order when looking for the config file.
var ConfigExtensions = []string{".json", ".yaml", ".yml"}

// Top level config sections.
const (
	sectionHosts       = "hosts"
	sectionConnections = "connections"
	sectionOptions     = "options"
)

// optionFlags maps option keys to the CLI flags that override them.
var optionFlags = map[string]string{
	"timeout":  "timeout",
	"parallel": "parallel",
	"verbose":  "verbose",
	"color":    "color",
}

// Loader reads shellshock config and group settings files.
type Loader struct {
	fs    afero.Fs
	flags *pflag.FlagSet
	log   logger.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFlags binds option values to flags; a changed flag wins over env and file.
func WithFlags(flags *pflag.FlagSet) LoaderOption {
	return func(l *Loader) {
		l.flags = flags
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logger.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a loader reading from fs.
func NewLoader(fs afero.Fs, opts ...LoaderOption) *Loader {
	l := &Loader{fs: fs, log: logger.Noop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find locates the config file:
// 1. Explicit path (from --config flag)
// 2. shellshock.json, shellshock.yaml, shellshock.yml in dir
func (l *Loader) Find(dir, explicit string) (string, error) {
	if explicit != "" {
		if _, err := l.fs.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrInvalidArgument,
					"Config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrInvalidArgument,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	for _, ext := range ConfigExtensions {
		path := filepath.Join(dir, ConfigBaseName+ext)
		if _, err := l.fs.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", errors.New(errors.ErrInvalidArgument,
		fmt.Sprintf("No %s.json found in %s", ConfigBaseName, dir),
		"Create one with a \"hosts\" section, or pass --config")
}

// Load reads the config file at path.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrValidation,
			"Cannot read config file "+path,
			"Check the file exists and is readable")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrValidation,
			"Cannot parse config file "+path,
			"Check the JSON (or YAML) syntax")
	}

	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrValidation,
			"Config file "+path+" must contain an object",
			"Start from {\"hosts\": {\"web\": [\"web1.example.com\"]}}")
	}

	cfg := &Config{
		Path:        path,
		Connections: connection.NewCollection(),
	}

	if node := lookup(root, sectionHosts); node != nil {
		if cfg.Hosts, err = decodeHosts(node); err != nil {
			return nil, err
		}
	}
	if cfg.Hosts == nil {
		return nil, errors.New(errors.ErrValidation,
			fmt.Sprintf("Config file does not contain %q", sectionHosts),
			"Add a hosts section mapping group names to lists of hostnames")
	}

	if node := lookup(root, sectionConnections); node != nil {
		if err := cfg.Connections.UnmarshalYAML(node); err != nil {
			if errors.IsLoadTime(err) {
				return nil, err
			}
			return nil, errors.WrapWithCode(err, errors.ErrValidation,
				"Invalid connections section in "+path,
				"Map host names or patterns to settings")
		}
	}

	if cfg.Options, err = l.loadOptions(path); err != nil {
		return nil, err
	}

	l.log.Debug("loaded %s: %d groups, %d connection entries", path, cfg.Hosts.Len(), cfg.Connections.Len())
	return cfg, nil
}

// loadOptions layers the options section, SHELLSHOCK_* env vars and flags.
func (l *Loader) loadOptions(path string) (Options, error) {
	def := DefaultOptions()

	v := viper.New()
	v.SetFs(l.fs)
	v.SetConfigFile(path)
	v.SetConfigType(configType(path))

	v.SetDefault("options.timeout", def.Timeout.String())
	v.SetDefault("options.parallel", def.Parallel)
	v.SetDefault("options.verbose", def.Verbose)
	v.SetDefault("options.color", def.Color)

	for key, flagName := range optionFlags {
		if err := v.BindEnv(sectionOptions+"."+key, EnvPrefix+"_"+strings.ToUpper(key)); err != nil {
			return def, errors.WrapWithCode(err, errors.ErrValidation, "Cannot bind environment for "+key, "")
		}
		if l.flags == nil {
			continue
		}
		if flag := l.flags.Lookup(flagName); flag != nil {
			if err := v.BindPFlag(sectionOptions+"."+key, flag); err != nil {
				return def, errors.WrapWithCode(err, errors.ErrValidation, "Cannot bind flag --"+flagName, "")
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return def, errors.WrapWithCode(err, errors.ErrValidation,
			"Cannot read options from "+path,
			"Check the options section")
	}

	timeout, err := parseTimeout(v.Get("options.timeout"))
	if err != nil {
		return def, errors.WrapWithCode(err, errors.ErrValidation,
			"Invalid timeout option",
			"Use a duration like \"30s\" or \"5m\", or a number of seconds")
	}

	parallel, err := cast.ToIntE(v.Get("options.parallel"))
	if err != nil {
		return def, errors.WrapWithCode(err, errors.ErrValidation,
			"Invalid parallel option",
			"Use a whole number of hosts, like 4")
	}

	opts := Options{
		Timeout:  timeout,
		Parallel: parallel,
		Verbose:  v.GetBool("options.verbose"),
		Color:    v.GetString("options.color"),
	}
	return opts, ValidateOptions(opts)
}

// parseTimeout accepts duration strings ("30s") and plain numbers of seconds.
func parseTimeout(raw any) (time.Duration, error) {
	switch val := raw.(type) {
	case nil:
		return 0, nil
	case string:
		if secs, err := cast.ToFloat64E(val); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}
		return time.ParseDuration(val)
	case time.Duration:
		return val, nil
	default:
		secs, err := cast.ToFloat64E(val)
		if err != nil {
			return 0, err
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	return doc
}

// lookup returns the value node for key in a mapping node.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func decodeHosts(node *yaml.Node) (*inventory.Declarations, error) {
	if node.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrValidation,
			fmt.Sprintf("line %d: %q must map group names to hostnames", node.Line, sectionHosts),
			"Use {\"web\": [\"web1.example.com\", \"web2.example.com\"]}")
	}

	decl := inventory.NewDeclarations()
	for i := 0; i+1 < len(node.Content); i += 2 {
		group := node.Content[i].Value
		var hostnames []string
		if err := node.Content[i+1].Decode(&hostnames); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrValidation,
				fmt.Sprintf("Hosts for group %q must be a list of hostnames", group),
				"Use [\"host1\", \"host2\"]")
		}
		decl.Add(group, hostnames...)
	}
	return decl, nil
}
