// Package ui provides terminal output components for shellshock's CLI.
//
// Everything renders through Lip Gloss so --no-color (DisableColors) and
// piped output are handled in one place.
//
// # Components Overview
//
//	Display     - Per-host progress lines: phases, script markers, output
//	Tables      - Static tables for listing hosts and groups
//	GroupPicker - Interactive group selection using Huh forms
//
// # Color Scheme
//
//	ColorSuccess   (green)  - Successful hosts and phases
//	ColorError     (red)    - Failures and script errors
//	ColorWarning   (yellow) - Skipped phases
//	ColorInfo      (cyan)   - Host headers, running scripts
//	ColorMuted     (gray)   - Commands, timing, secondary text
//	ColorSecondary (blue)   - Section headers
package ui
