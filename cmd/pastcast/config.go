package main

import (
	"fmt"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/pkg/env"
	"github.com/spf13/cobra"
)

var showSecrets bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as .env text",
	RunE: func(cmd *cobra.Command, args []string) error {
		sections := []struct {
			name  string
			parse func() (any, error)
		}{
			{"app", func() (any, error) { return config.ParseAppConfig() }},
			{"llm", func() (any, error) { return config.ParseLLMConfig() }},
			{"facts", func() (any, error) { return config.ParseFactsConfig() }},
			{"weather", func() (any, error) { return config.ParseWeatherConfig() }},
			{"translation", func() (any, error) { return config.ParseTranslationConfig() }},
		}

		opts := env.Options{Mask: !showSecrets, Defaults: true}
		for _, s := range sections {
			cfg, err := s.parse()
			if err != nil {
				return fmt.Errorf("%s config: %w", s.name, err)
			}
			out, err := env.MarshalEnv(cfg, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", s.name, out)
		}
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print keys and tokens unmasked")
	rootCmd.AddCommand(configCmd)
}
