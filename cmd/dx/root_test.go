package main

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/dxcli/dx/internal/log"
)

// Not parallel: mutates the global flag variables.
func TestPersistentPreRunAttachesLogger(t *testing.T) {
	defer func() { verbose, quiet = false, false }()

	tests := []struct {
		name        string
		verbose     bool
		quiet       bool
		wantErr     bool
		wantVerbose bool
	}{
		{"default", false, false, false, false},
		{"verbose flag reaches the logger", true, false, false, true},
		{"quiet flag accepted", false, true, false, false},
		{"verbose and quiet conflict", true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbose, quiet = tt.verbose, tt.quiet

			// A command outside gitCommands, so the hook needs no git binary
			cmd := &cobra.Command{Use: "run"}
			cmd.SetContext(context.Background())

			err := rootCmd.PersistentPreRunE(cmd, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error for --verbose --quiet")
				}
				return
			}
			if err != nil {
				t.Fatalf("PersistentPreRunE: %v", err)
			}

			if got := log.FromContext(cmd.Context()).IsVerbose(); got != tt.wantVerbose {
				t.Errorf("IsVerbose() = %v, want %v", got, tt.wantVerbose)
			}
		})
	}
}
