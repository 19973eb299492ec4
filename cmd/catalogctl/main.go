// Package main is the entry point for catalogctl, the operator CLI for the
// itinerary search service. It seeds the catalog store, rebuilds the search
// index, runs searches against local data and lists recorded searches.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tripfinder/itinerary-search-service/internal/app"
	"github.com/tripfinder/itinerary-search-service/internal/config"
	"github.com/tripfinder/itinerary-search-service/internal/infrastructure/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the catalogctl CLI.
var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Manage the itinerary catalog, search index and search log",
	Long: `catalogctl operates on the same data files as the search service: the
SQLite catalog store, the Bleve search index and the Badger search log.

Settings come from the service environment variables (STORE_DSN, INDEX_PATH,
SEARCHLOG_PATH, ...), then from a catalogctl.yaml config file, then from
CATALOGCTL_* variables and finally from flags.

The index and the search log are locked while the service runs; stop it
before reindexing or listing searches.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./catalogctl.yaml or ~/.config/catalogctl/config.yaml)")
	flags.String("store-dsn", "", "SQLite data source name of the catalog store")
	flags.String("index-path", "", "directory of the Bleve search index")
	flags.String("searchlog-path", "", "directory of the Badger search log")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("store.dsn", flags.Lookup("store-dsn"))
	_ = viper.BindPFlag("index.path", flags.Lookup("index-path"))
	_ = viper.BindPFlag("searchlog.path", flags.Lookup("searchlog-path"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("catalogctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "catalogctl"))
		}
	}

	viper.SetEnvPrefix("CATALOGCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the service configuration and applies catalogctl
// overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, viper.GetViper())
	return cfg, nil
}

// applyOverrides copies the settings present in v onto cfg.
func applyOverrides(cfg *config.Config, v *viper.Viper) {
	if dsn := v.GetString("store.dsn"); dsn != "" {
		cfg.Store.DSN = dsn
	}
	if path := v.GetString("index.path"); path != "" {
		cfg.Index.Path = path
		cfg.Index.InMemory = false
	}
	if path := v.GetString("searchlog.path"); path != "" {
		cfg.SearchLog.Path = path
		cfg.SearchLog.InMemory = false
	}
	if v.IsSet("searchlog.enabled") {
		cfg.SearchLog.Enabled = v.GetBool("searchlog.enabled")
	}
	if level := v.GetString("log.level"); level != "" {
		cfg.Logging.Level = level
	}
	// Operators read the CLI, so logs go to stderr in console form.
	cfg.Logging.Format = "console"
}

// openApp loads configuration and opens every dependency. The caller must
// Close the returned App.
func openApp() (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logger.NewWithOutput(cfg.Logging, os.Stderr))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
