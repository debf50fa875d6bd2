// Command battlecore is the tactical combat core's single binary:
// serve a battle, re-simulate a replay, or validate a scenario file
// without starting one. Grounded on suderio-ancient-draconic/cmd's
// cobra root + per-subcommand file layout, replacing the teacher's
// flag-parsed cmd/server/main.go with a cobra command tree per
// SPEC_FULL.md §A.4.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pfassina/grimdark/internal/config"
	"github.com/pfassina/grimdark/internal/obs"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "battlecore",
	Short: "Grimdark tactical combat core",
	Long:  `battlecore hosts, replays, and validates grimdark tactical grid-combat scenarios.`,
}

func init() {
	config.BindFlags(v)

	rootCmd.PersistentFlags().String("config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().Int64("seed", 0, "Battle RNG seed (0 for random)")
	_ = v.BindPFlag("timeline.seed", rootCmd.PersistentFlags().Lookup("seed"))

	cobra.OnInitialize(loadConfigFile)
}

// loadConfigFile merges a -config TOML file's values under the
// flag/env layer already bound in init(), the same precedence order
// BindFlags documents: flags > env > file > defaults.
func loadConfigFile() {
	path, _ := rootCmd.PersistentFlags().GetString("config")
	if path == "" {
		return
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.MergeInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "battlecore: reading %s: %v\n", path, err)
		os.Exit(1)
	}
}

func currentConfig() *config.Config {
	cfg := config.FromViper(v)
	obs.Init(cfg.Logging.Level, cfg.Logging.Format)
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
