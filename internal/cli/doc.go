// Package cli defines the Cobra command tree for the schemagen CLI. Each file
// registers one top-level command with the root command. Commands resolve the
// project config and logger in the root pre-run hook and delegate the work to
// the scaffold, templates and config packages; they only parse flags, prompt
// and format output.
package cli
