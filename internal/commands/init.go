package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/izvod-dev/izvod/internal/config"
)

func newInitCommand() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize an izvod workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, owner)
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "statement owner name (required)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func runInit(dir, owner string) error {
	for _, d := range []string{"statements", "specifications", "out", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	path := filepath.Join(dir, config.Filename)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.Default(owner)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized izvod workspace at %s\n", dir)
	return nil
}
