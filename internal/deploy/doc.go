// Package deploy drives the per-host deployment pipeline.
//
// Each host moves through Idle → Uploading → Executing → CleaningUp and ends
// Done or Failed. A failure is scoped to its host: an upload failure skips the
// remaining phases, an execution failure still cleans up, and the run always
// continues with the next host.
//
// Ping and command modes replace the pipeline with a single remote command
// per host.
package deploy
