package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"llmm/internal/ollama"
)

func newCheckCmd(flags *cliFlags, getenv func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the configured Ollama daemon is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := flags.resolve(cmd, getenv)
			if err != nil {
				return err
			}
			client := ollama.New(ollama.Config{
				BaseURL:        cfg.OllamaURL,
				RequestTimeout: cfg.ConnectTimeout(),
				ConnectTimeout: cfg.ConnectTimeout(),
			}, log)
			v, err := client.Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("ollama at %s: %w", cfg.OllamaURL, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ollama %s reachable at %s\n", v.Version, cfg.OllamaURL)
			return nil
		},
	}
}
