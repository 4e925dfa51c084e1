// Package dotnet wraps the dotnet CLI for builds and user-secrets.
package dotnet

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/dxcli/dx/internal/cmd"
)

// ErrDotnetNotFound indicates dotnet is not installed or not in PATH
var ErrDotnetNotFound = fmt.Errorf("dotnet not found: please install the .NET SDK (https://dot.net)")

// CheckDotnet verifies that dotnet is available in PATH.
func CheckDotnet() error {
	if _, err := exec.LookPath("dotnet"); err != nil {
		return ErrDotnetNotFound
	}
	return nil
}

// BuildResult holds the outcome of a dotnet build.
type BuildResult struct {
	Succeeded   bool
	Output      string   // combined stdout/stderr
	Diagnostics []string // distinct compiler/MSBuild error lines
}

// diagnosticRe matches MSBuild error lines like
// "Program.cs(12,5): error CS0103: The name 'x' does not exist ...".
var diagnosticRe = regexp.MustCompile(`error (?:CS|MSB|NETSDK)\d+:.*`)

// Build runs dotnet build in dir and returns the result. A failing build is
// not an error; only a failure to start the process is.
func Build(ctx context.Context, dir string) (*BuildResult, error) {
	out, err := cmd.CombinedContext(ctx, dir, "dotnet", "build", "--nologo")
	if err != nil && cmd.ExitCode(err) < 0 {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("dotnet build: %w", err)
	}

	return &BuildResult{
		Succeeded:   err == nil,
		Output:      string(out),
		Diagnostics: ExtractDiagnostics(string(out)),
	}, nil
}

// ExtractDiagnostics returns the distinct compiler error lines from build
// output, preserving first-seen order. MSBuild repeats each error in the
// summary section; duplicates are dropped.
func ExtractDiagnostics(output string) []string {
	seen := make(map[string]bool)
	var diags []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !diagnosticRe.MatchString(line) {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		diags = append(diags, line)
	}
	return diags
}
