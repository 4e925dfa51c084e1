package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/agent"
	"github.com/dxcli/dx/internal/azure"
	"github.com/dxcli/dx/internal/config"
	"github.com/dxcli/dx/internal/dotnet"
	"github.com/dxcli/dx/internal/git"
	"github.com/dxcli/dx/internal/github"
	"github.com/dxcli/dx/internal/log"
	"github.com/dxcli/dx/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg *config.Config
)

// Command group IDs for organizing help output
const (
	GroupGit    = "git"
	GroupGitHub = "github"
	GroupDotnet = "dotnet"
	GroupAgent  = "agent"
)

// Exit codes. Generic failures exit 1; the rest let scripts distinguish
// the common failure classes without parsing output.
const (
	exitOK          = 0
	exitGeneric     = 1
	exitToolMissing = 2
	exitBuildFailed = 3
	exitTasksFailed = 4
)

// exitError carries a specific exit code out of a command's RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// gitCommands lists subcommands that operate on the current git repository.
var gitCommands = map[string]bool{
	"status":  true,
	"issue":   true,
	"pr":      true,
	"release": true,
	"commit":  true,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dx",
	Short: "Developer workflow automation for git, GitHub, .NET and coding agents",
	Long: `dx bundles the repetitive parts of a development workflow into one CLI:
git status dashboards, GitHub issues/PRs/releases, Azure Key Vault secret
import into dotnet user-secrets, and AI coding-agent invocations from
single-shot build fixes to bounded parallel fan-outs over many files.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip checks for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		// Validate mutually exclusive flags
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are parsed by now; the logger must be created here, not in
		// Execute, or -v/-q would be captured before parsing
		attachLogger(cmd)

		// Check git is available for repository commands
		if gitCommands[cmd.Name()] {
			return git.CheckGit()
		}
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Add output printer (stdout for primary data); the logger is attached
	// per command in PersistentPreRunE once flags are parsed
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// attachLogger replaces the command context with one carrying a logger
// built from the parsed --verbose/--quiet flags (stderr for diagnostics).
func attachLogger(cmd *cobra.Command) {
	logger := log.New(os.Stderr, verbose, quiet)
	cmd.SetContext(log.WithLogger(cmd.Context(), logger))
}

// exitCode maps an error from Execute to the process exit code.
func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	switch {
	case errors.Is(err, git.ErrGitNotFound),
		errors.Is(err, github.ErrGHNotFound),
		errors.Is(err, github.ErrGHNotAuthenticated),
		errors.Is(err, azure.ErrAzNotFound),
		errors.Is(err, azure.ErrAzNotAuthenticated),
		errors.Is(err, dotnet.ErrDotnetNotFound),
		errors.Is(err, agent.ErrAgentNotFound):
		return exitToolMissing
	}
	return exitGeneric
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGit, Title: "Git Commands:"},
		&cobra.Group{ID: GroupGitHub, Title: "GitHub Commands:"},
		&cobra.Group{ID: GroupDotnet, Title: ".NET Commands:"},
		&cobra.Group{ID: GroupAgent, Title: "Agent Commands:"},
	)

	// Git commands
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newCommitCmd())

	// GitHub commands
	rootCmd.AddCommand(newIssueCmd())
	rootCmd.AddCommand(newPrCmd())
	rootCmd.AddCommand(newReleaseCmd())

	// .NET commands
	rootCmd.AddCommand(newSecretsCmd())
	rootCmd.AddCommand(newFixCmd())

	// Agent commands
	rootCmd.AddCommand(newRunCmd())
}
