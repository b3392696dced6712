package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cesargomez89/soundboard/internal/config"
	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/httpclient"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/remote"
	"github.com/cesargomez89/soundboard/internal/store"
)

var (
	// Version is set at build time
	Version = "dev"

	v = viper.New()

	rootCmd = &cobra.Command{
		Use:   "soundctl",
		Short: "Inspect and maintain a soundboard data directory",
		Long: `soundctl works directly on the soundboard database and data directory.
It can run migrations, pull updates from the content server, print charts
and deliver pending share statistics without starting the HTTP server.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("data-dir", constants.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().String("db", "", "database file (default is <data-dir>/"+constants.DefaultDBFileName+")")
	rootCmd.PersistentFlags().String("server", constants.DefaultServerURL, "content server URL")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	// Bind flags to viper
	v.BindPFlag(config.KeyConfigFile, rootCmd.PersistentFlags().Lookup("config"))
	v.BindPFlag(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))
	v.BindPFlag(config.KeyDBPath, rootCmd.PersistentFlags().Lookup("db"))
	v.BindPFlag(config.KeyServerURL, rootCmd.PersistentFlags().Lookup("server"))
	v.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

// env holds what every command needs once configuration is loaded.
type env struct {
	cfg *config.Config
	log *logger.Logger
	db  *store.DB
}

func openEnv() (*env, error) {
	cfg, err := config.LoadWith(v)
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{
		Output: os.Stderr,
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

func (e *env) server() *remote.Client {
	client := httpclient.NewClient(&http.Client{Timeout: constants.DefaultHTTPTimeout}, e.cfg.RequestInterval)
	return remote.NewClient(e.cfg.ServerURL, client)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
