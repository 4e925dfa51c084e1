// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. All helpers
// take a context for cancellation and log the executed command (with its
// duration) through the log package when verbose mode is enabled.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoDir, "git", "fetch"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("git fetch: %w", err)
//	}
//
//	// For commands that return output:
//	out, err := cmd.OutputContext(ctx, "", "gh", "pr", "list", "--json", "number")
//
//	// For commands whose failure is a result, not an error (fan-out tasks,
//	// build probes), CombinedContext returns interleaved stdout/stderr and
//	// ExitCode classifies the failure:
//	out, err := cmd.CombinedContext(ctx, dir, "dotnet", "build")
//	if code := cmd.ExitCode(err); code != 0 { ... }
//
// # Design Notes
//
// dx shells out to the git/gh/az/dotnet CLIs and the coding-agent CLI rather
// than using Go libraries. This approach is simpler, more reliable, and
// ensures compatibility with user configurations (SSH keys, credential
// helpers, az login sessions, etc.).
package cmd
