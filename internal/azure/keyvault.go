// Package azure wraps the az CLI for Key Vault secret access.
package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dxcli/dx/internal/cmd"
)

// ErrAzNotFound indicates az CLI is not installed or not in PATH
var ErrAzNotFound = fmt.Errorf("az not found: please install the Azure CLI (https://aka.ms/azure-cli)")

// ErrAzNotAuthenticated indicates az CLI is installed but not logged in
var ErrAzNotAuthenticated = fmt.Errorf("az not authenticated: please run 'az login'")

// CheckAz verifies that az CLI is available and logged in.
func CheckAz(ctx context.Context) error {
	if _, err := exec.LookPath("az"); err != nil {
		return ErrAzNotFound
	}
	// az account show exits non-zero when not logged in
	if err := cmd.RunContext(ctx, "", "az", "account", "show", "--output", "none"); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrAzNotAuthenticated
	}
	return nil
}

// ListSecretNames returns the names of all secrets in the vault.
func ListSecretNames(ctx context.Context, vault string) ([]string, error) {
	if vault == "" {
		return nil, fmt.Errorf("vault name must not be empty (set vault.name in the config)")
	}

	out, err := cmd.OutputContext(ctx, "", "az", "keyvault", "secret", "list",
		"--vault-name", vault,
		"--query", "[].name",
		"--output", "json")
	if err != nil {
		return nil, fmt.Errorf("az keyvault secret list: %w", err)
	}

	var names []string
	if err := json.Unmarshal(out, &names); err != nil {
		return nil, fmt.Errorf("failed to parse az output: %w", err)
	}
	return names, nil
}

// GetSecret fetches a single secret value from the vault.
func GetSecret(ctx context.Context, vault, name string) (string, error) {
	out, err := cmd.OutputContext(ctx, "", "az", "keyvault", "secret", "show",
		"--vault-name", vault,
		"--name", name,
		"--query", "value",
		"--output", "tsv")
	if err != nil {
		return "", fmt.Errorf("az keyvault secret show %s: %w", name, err)
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// ConfigKey maps a Key Vault secret name to a .NET configuration key.
// Vault names can't contain ':', so '--' is the conventional section
// separator: "ConnectionStrings--Db" → "ConnectionStrings:Db".
func ConfigKey(secretName string) string {
	return strings.ReplaceAll(secretName, "--", ":")
}
