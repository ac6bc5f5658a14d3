// Package main provides the ask subcommand.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wakti-app/help-engine/internal/assistant"
	"github.com/wakti-app/help-engine/internal/cache"
	"github.com/wakti-app/help-engine/internal/config"
	"github.com/wakti-app/help-engine/internal/llm"
	"github.com/wakti-app/help-engine/internal/monitoring"
	"github.com/wakti-app/help-engine/internal/retrieval"
	"github.com/wakti-app/help-engine/internal/storage"
)

// newAskCmd creates the ask subcommand.
func newAskCmd() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the assistant a question from the terminal",
		Long: `Ask runs the full retrieval and completion pipeline locally against the
configured database and providers, then prints the reply and any
navigation chip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			manualRepo := storage.NewManualRepository(db)
			usageRepo := storage.NewUsageRepository(db)

			searcher := retrieval.NewSearcher(logger, manualRepo, cache.NewMemoryClient(cfg.Cache.MaxEntries), retrieval.SearcherConfig{
				TopK:         cfg.Retrieval.TopK,
				CacheResults: false,
				CacheTTL:     cfg.Retrieval.CacheTTL,
			})

			usageLogger := monitoring.NewUsageLogger(logger, usageRepo)
			chain := llm.NewChain(cliProviders(), usageLogger.Record)

			helper := assistant.New(logger, searcher, chain, assistant.Config{
				MaxHistory:  cfg.Retrieval.MaxHistory,
				Temperature: cfg.Providers.Primary.Temperature,
				MaxTokens:   cfg.Providers.Primary.MaxTokens,
			})

			ui := NewUI(outputJSON)
			ui.StartSpinner("Thinking...")
			resp, err := helper.Chat(ctx, assistant.ChatRequest{
				Message:  args[0],
				Language: language,
			})
			ui.StopSpinner()
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}

			if outputJSON {
				return json.NewEncoder(os.Stdout).Encode(resp)
			}

			ui.Info("%s", resp.Reply)
			for _, chip := range resp.Chips {
				ui.Chip(chip.Label, chip.Route)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "en", "response language (en or ar)")

	return cmd
}

// cliProviders constructs the provider chain from config, skipping
// providers whose configuration is incomplete.
func cliProviders() []llm.Provider {
	var providers []llm.Provider

	for _, pc := range []config.ProviderConfig{cfg.Providers.Primary, cfg.Providers.Fallback} {
		if pc.BaseURL == "" {
			continue
		}

		client, err := llm.NewClient(llm.ClientConfig{
			Name:    pc.Name,
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
			APIKey:  os.Getenv(pc.APIKeyEnv),
			Timeout: pc.Timeout,
		})
		if err != nil {
			logger.Warn().Err(err).Str("provider", pc.Name).Msg("Skipping provider")
			continue
		}

		providers = append(providers, client)
	}

	return providers
}
