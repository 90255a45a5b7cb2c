// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the taxon-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the taxon-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "taxon-engine",
	Short: "Enrich plant species lists with synonyms from Plants of the World Online",
	Long: `taxon-engine looks up botanical names in the IPNI registry, follows the
matching Plants of the World Online taxon pages, and extracts the synonym
lists published there.

The main workflow is the enrich subcommand, which processes a CSV species
list into a results table. The resolve and synonyms subcommands expose the
two pipeline stages individually for spot checks.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./taxon-engine.yaml or ~/.config/taxon-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("taxon-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "taxon-engine"))
		}
	}

	viper.SetEnvPrefix("TAXON_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a string option: explicit flag, then config file,
// then the built-in default.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// durationSetting resolves a duration option the same way. An explicit
// zero on the flag is honored, so --delay 0 turns the row delay off.
func durationSetting(cmd *cobra.Command, flag, key string, fallback time.Duration) time.Duration {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	if v := viper.GetDuration(key); v != 0 {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
