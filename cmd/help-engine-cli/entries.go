// Package main provides the entries subcommand.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wakti-app/help-engine/internal/storage"
)

// newEntriesCmd creates the entries subcommand.
func newEntriesCmd() *cobra.Command {
	var (
		section string
		id      string
	)

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List stored manual entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := storage.NewManualRepository(db)

			if id != "" {
				entry, err := repo.GetByID(cmd.Context(), id)
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("entry %q not found", id)
				}
				if err != nil {
					return fmt.Errorf("get entry: %w", err)
				}

				if outputJSON {
					return json.NewEncoder(os.Stdout).Encode(entry)
				}

				ui := NewUI(false)
				ui.Heading("%s (%s)", entry.TitleEN, entry.ID)
				ui.Info("Section:  %s", entry.Section)
				ui.Info("Route:    %s", entry.Route)
				ui.Info("Tags:     %s", strings.Join(entry.Tags, ", "))
				ui.Info("Content:  %s", entry.ContentEN)
				return nil
			}

			entries, err := repo.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("list entries: %w", err)
			}

			if section != "" {
				filtered := entries[:0]
				for _, e := range entries {
					if strings.EqualFold(e.Section, section) {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(entries)
			}

			ui := NewUI(false)
			ui.Heading("Manual entries (%d)", len(entries))
			for _, e := range entries {
				route := e.Route
				if route == "" {
					route = "-"
				}
				ui.Info("%-28s %-16s %-32s %s", e.ID, e.Section, e.TitleEN, route)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "filter by manual section")
	cmd.Flags().StringVar(&id, "id", "", "show a single entry by ID")

	return cmd
}
