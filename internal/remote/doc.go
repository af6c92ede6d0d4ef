// Package remote runs fully formed ssh and scp command lines on the local
// machine and interprets their output.
//
// Nothing here speaks the SSH protocol. CommandBuilder assembles ssh/scp
// invocations for an inventory.Host, and an Executor runs them: ShellExecutor
// spawns them through /bin/sh, DryRunExecutor only prints them.
package remote
