// Package ui provides the interactive terminal components for dx:
// confirmation prompts, the fuzzy multi-select file picker, spinners,
// the fan-out progress bar, and table formatting.
//
// Commands must only reach for these when stdout is a TTY; every
// interactive entry point has a flag-driven non-interactive path.
package ui
