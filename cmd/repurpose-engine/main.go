// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the repurpose-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/repurpose-engine/internal/secrets"
	"github.com/pdiddy/repurpose-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds contact details loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the repurpose-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "repurpose-engine",
	Short: "Rank repurposing candidates for Alzheimer's disease",
	Long: `repurpose-engine scores approved drugs as Alzheimer's repurposing
candidates. Mechanism scoring weighs each drug's targets against AD
pathology gene modules; literature mining extracts supporting evidence
from Europe PMC abstracts; the final ranking blends both axes.

Each pipeline stage is a subcommand: score, mine, rank, and report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./repurpose-engine.yaml or ~/.config/repurpose-engine/config.yaml)")
	rootCmd.PersistentFlags().String("results-dir", "results", "directory for the results database and output files")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("repurpose-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "repurpose-engine"))
		}
	}

	viper.SetEnvPrefix("REPURPOSE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig returns the default pipeline configuration with any
// values from the config file or environment layered on top. Keys
// follow the yaml tags of the config structs, e.g. rank.mechanism_weight.
func pipelineConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
