package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/azure"
	"github.com/dxcli/dx/internal/dotnet"
	"github.com/dxcli/dx/internal/log"
	"github.com/dxcli/dx/internal/output"
	"github.com/dxcli/dx/internal/ui"
)

func newSecretsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "secrets",
		Short:   "Manage .NET user-secrets",
		GroupID: GroupDotnet,
	}

	cmd.AddCommand(newSecretsImportCmd())

	return cmd
}

func newSecretsImportCmd() *cobra.Command {
	var (
		vault   string
		prefix  string
		project string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import Azure Key Vault secrets into dotnet user-secrets",
		Args:  cobra.NoArgs,
		Long: `Copy secrets from an Azure Key Vault into a .NET project's user-secrets
store.

Vault secret names use "--" as the section separator; they are mapped
to ":" configuration keys (ConnectionStrings--Db becomes
ConnectionStrings:Db). Only secrets matching --prefix are imported when
a prefix is set. The user-secrets store is initialized first if needed.`,
		Example: `  dx secrets import --vault myapp-kv
  dx secrets import --vault myapp-kv --prefix myapp-- -p ./src/MyApp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if vault == "" {
				return fmt.Errorf("no vault given: pass --vault or set vault.name in the config")
			}

			if err := azure.CheckAz(ctx); err != nil {
				return err
			}
			if err := dotnet.CheckDotnet(); err != nil {
				return err
			}

			names, err := azure.ListSecretNames(ctx, vault)
			if err != nil {
				return err
			}
			if prefix != "" {
				names = filterPrefix(names, prefix)
			}
			if len(names) == 0 {
				return fmt.Errorf("no secrets to import from %s", vault)
			}

			l.Debug("importing secrets", "vault", vault, "count", len(names))

			if err := dotnet.InitUserSecrets(ctx, project); err != nil {
				return err
			}

			for _, name := range names {
				value, err := azure.GetSecret(ctx, vault, name)
				if err != nil {
					return fmt.Errorf("fetch %s: %w", name, err)
				}
				key := azure.ConfigKey(name)
				if err := dotnet.SetUserSecret(ctx, project, key, value); err != nil {
					return fmt.Errorf("set %s: %w", key, err)
				}
				l.Printf("  %s\n", key)
			}

			out.Println(ui.Success(fmt.Sprintf("Imported %d secrets from %s", len(names), vault)))
			return nil
		},
	}

	cmd.Flags().StringVar(&vault, "vault", "", "Key Vault name (default: vault.name from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only import secrets with this name prefix (default: vault.prefix from config)")
	cmd.Flags().StringVarP(&project, "project", "p", ".", "Path to the .NET project")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if vault == "" {
			vault = cfg.Vault.Name
		}
		if !cmd.Flags().Changed("prefix") && cfg.Vault.Prefix != "" {
			prefix = cfg.Vault.Prefix
		}
	}

	return cmd
}

// filterPrefix keeps names starting with prefix, preserving order.
func filterPrefix(names []string, prefix string) []string {
	var out []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}
