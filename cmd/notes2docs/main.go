// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notes2docs CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/pdiddy/notes2docs/internal/gdocs"
	"github.com/pdiddy/notes2docs/internal/publish"
	"github.com/pdiddy/notes2docs/internal/secrets"
	"github.com/pdiddy/notes2docs/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds values loaded from the secrets directory at startup.
var loadedSecrets secrets.Set

const (
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 5
	defaultHistoryDir = ".notes2docs"
	defaultSecretsDir = ".secrets/"
)

// rootCmd is the base command for the notes2docs CLI.
var rootCmd = &cobra.Command{
	Use:   "notes2docs",
	Short: "Publish markdown notes as formatted Google Docs",
	Long: `notes2docs turns markdown meeting notes into a formatted Google Doc.

Headings, checkboxes (with @name: mentions), and nested bullet lists become
document styles; other lines become body paragraphs. Each note is compiled
into one batch of edit requests, applied to a new document, and shared.

Credentials come from a service-account key file, either plain or sealed
with "notes2docs seal".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetCount("verbose")
		commonlog.Configure(verbose, nil)

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notes2docs.yaml or ~/.config/notes2docs/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", defaultSecretsDir, "directory of secret files")
	rootCmd.PersistentFlags().String("history-dir", defaultHistoryDir, "directory for the publication history database")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")

	viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
	viper.BindPFlag("history_dir", rootCmd.PersistentFlags().Lookup("history-dir"))

	viper.SetDefault("title", publish.DefaultTitle)
	viper.SetDefault("docs.timeout", defaultTimeout)
	viper.SetDefault("docs.user_agent", gdocs.DefaultUserAgent)
	viper.SetDefault("docs.max_retries", defaultMaxRetries)
	viper.SetDefault("docs.docs_endpoint", gdocs.DefaultDocsEndpoint)
	viper.SetDefault("docs.drive_endpoint", gdocs.DefaultDriveEndpoint)
	viper.SetDefault("share.role", string(types.RoleWriter))
	viper.SetDefault("share.public", true)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notes2docs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notes2docs"))
		}
	}

	viper.SetEnvPrefix("NOTES2DOCS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// publishConfig assembles the typed configuration from viper and fills
// credential and share defaults from the secrets directory.
func publishConfig() (types.PublishConfig, error) {
	var cfg types.PublishConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.PublishConfig{}, fmt.Errorf("reading configuration: %w", err)
	}

	cfg.Credentials.File = loadedSecrets.Get(secrets.KeyServiceAccountFile, cfg.Credentials.File)
	if cfg.Credentials.File == "" {
		cfg.Credentials.SealedFile = loadedSecrets.Get(secrets.KeySealedServiceAccountFile, cfg.Credentials.SealedFile)
	}
	cfg.Share.Email = loadedSecrets.Get(secrets.KeyShareEmail, cfg.Share.Email)

	if cfg.Share.Role != "" && !cfg.Share.Role.Valid() {
		return types.PublishConfig{}, fmt.Errorf("share.role %q: use writer, commenter, or reader", cfg.Share.Role)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
