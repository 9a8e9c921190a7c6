// Package app implements the main application commands.
package app

import (
	"context"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db"
	"github.com/folio-cms/folio/internal/logger"
)

var (
	configPath string // Path to the configuration file
	devMode    bool

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "folio",
		Short: "folio serves an academic portfolio site with an admin content area",
		Long: `folio serves a personal academic portfolio: publications, speeches, awards,
gallery and more, edited through an admin area and a JSON API.`,
		Args:         cobra.OnlyValidArgs,
		SilenceUsage: true,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "directory holding main.toml (default ./etc/)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode")
}

// loadConfig reads the configuration and initialises the global logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	return logger.Init(cfg.Log)
}

// openDB opens the configured database for one-shot commands.
func openDB() (*gorm.DB, func(), error) {
	conn, err := db.Open(&cfg)
	if err != nil {
		return nil, nil, err
	}

	return conn, func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
