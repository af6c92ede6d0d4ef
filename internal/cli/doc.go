// Package cli implements the shellshock command-line interface.
//
// The root command deploys a shellshock directory to its hosts:
//
//	shellshock <path>                    - upload, run scripts, clean up on every host
//	shellshock <path> --ping             - check every host answers
//	shellshock <path> --command "uptime" - run one command on every host
//	shellshock hosts <path>              - show the resolved inventory
//	shellshock version                   - print version information
//
// Loading follows the same steps for every command: validate the directory,
// load the config file, load group settings, build the host registry, apply
// connection settings, then filter by group. Any failure there aborts the run
// before a host is contacted.
//
// Options (timeout, parallel, verbose, color) come from the config file's
// options section, SHELLSHOCK_* environment variables and flags, in
// increasing order of precedence.
package cli
