package dotnet

import (
	"context"
	"fmt"
	"strings"

	"github.com/dxcli/dx/internal/cmd"
)

// InitUserSecrets ensures the project has a UserSecretsId.
// Safe to run repeatedly; dotnet keeps the existing id.
func InitUserSecrets(ctx context.Context, project string) error {
	args := []string{"user-secrets", "init"}
	if project != "" {
		args = append(args, "--project", project)
	}
	if err := cmd.RunContext(ctx, "", "dotnet", args...); err != nil {
		return fmt.Errorf("dotnet user-secrets init: %w", err)
	}
	return nil
}

// SetUserSecret stores a single key/value in the project's user-secrets store.
func SetUserSecret(ctx context.Context, project, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("secret key must not be empty")
	}
	args := []string{"user-secrets", "set", key, value}
	if project != "" {
		args = append(args, "--project", project)
	}
	if err := cmd.RunContext(ctx, "", "dotnet", args...); err != nil {
		return fmt.Errorf("dotnet user-secrets set %s: %w", key, err)
	}
	return nil
}
