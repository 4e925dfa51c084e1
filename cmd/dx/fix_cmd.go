package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/agent"
	"github.com/dxcli/dx/internal/dotnet"
	"github.com/dxcli/dx/internal/log"
	"github.com/dxcli/dx/internal/output"
	"github.com/dxcli/dx/internal/ui"
)

func newFixCmd() *cobra.Command {
	var maxAttempts int

	cmd := &cobra.Command{
		Use:     "fix [dir]",
		Short:   "Build a .NET project and let the coding agent fix the errors",
		GroupID: GroupDotnet,
		Args:    cobra.MaximumNArgs(1),
		Long: `Run dotnet build and, when it fails, hand the compiler diagnostics to
the coding-agent CLI with instructions to fix them, then rebuild.

The build/fix cycle repeats until the build succeeds or --max-attempts
is reached. Agent output is streamed as it arrives.`,
		Example: `  dx fix                       # Build the current directory
  dx fix ./src/MyApp --max-attempts 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			if err := dotnet.CheckDotnet(); err != nil {
				return err
			}
			ag := agent.New(cfg.Agent)
			if err := ag.Check(); err != nil {
				return err
			}

			for attempt := 1; attempt <= maxAttempts; attempt++ {
				l.Printf("Build attempt %d/%d\n", attempt, maxAttempts)

				result, err := dotnet.Build(ctx, dir)
				if err != nil {
					return err
				}
				if result.Succeeded {
					out.Println(ui.Success("Build succeeded"))
					return nil
				}

				diags := result.Diagnostics
				if len(diags) == 0 {
					// Build failed for a reason the agent can't act on
					return fmt.Errorf("build failed without compiler diagnostics:\n%s", result.Output)
				}

				l.Printf("%d diagnostics, asking %s to fix them\n", len(diags), cfg.Agent.Command)
				for _, d := range diags {
					l.Println(ui.Error("  " + d))
				}

				prompt := remediationPrompt(diags)
				if _, err := ag.Run(ctx, dir, prompt, func(text string) {
					out.Println(ui.Muted(text))
				}); err != nil {
					return fmt.Errorf("agent attempt %d: %w", attempt, err)
				}
			}

			// Final rebuild to report the end state
			result, err := dotnet.Build(ctx, dir)
			if err != nil {
				return err
			}
			if result.Succeeded {
				out.Println(ui.Success("Build succeeded"))
				return nil
			}

			return &exitError{
				code: exitBuildFailed,
				err:  fmt.Errorf("build still failing after %d attempts (%d diagnostics left)", maxAttempts, len(result.Diagnostics)),
			}
		},
	}

	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 3, "Maximum build/fix cycles")

	return cmd
}

// remediationPrompt renders the fix instruction handed to the agent.
func remediationPrompt(diagnostics []string) string {
	var sb strings.Builder
	sb.WriteString("The build of this project fails with the following compiler errors:\n\n")
	for _, d := range diagnostics {
		sb.WriteString(d)
		sb.WriteString("\n")
	}
	sb.WriteString("\nFix these errors. Change only what is needed to make the build pass.")
	return sb.String()
}
