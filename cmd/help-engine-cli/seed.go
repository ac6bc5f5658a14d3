// Package main provides the seed subcommand.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wakti-app/help-engine/internal/storage"
)

// newSeedCmd creates the seed subcommand.
func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed manual entries from a YAML file",
		Long: `Seed loads manual entries from a YAML file and upserts them into the
database. Existing entries with the same ID are updated in place, so the
command is safe to re-run after editing the manual.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}

			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := storage.NewManualRepository(db)

			ui := NewUI(outputJSON)
			ui.StartSpinner("Seeding manual entries...")
			count, err := storage.SeedManual(cmd.Context(), repo, file)
			ui.StopSpinner()
			if err != nil {
				return fmt.Errorf("seed manual: %w", err)
			}

			total, err := repo.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("count entries: %w", err)
			}

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"seeded": count,
					"total":  total,
					"file":   file,
				})
			}

			ui.Success("Seeded %d manual entries from %s (%d total)", count, file, total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the manual YAML file")

	return cmd
}
