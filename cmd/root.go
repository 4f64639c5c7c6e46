// Package cmd provides the command-line interface for fetch-issues.
package cmd

import (
	"errors"
	"fmt"

	"github.com/danielolaszy/fetchissues/internal/config"
	"github.com/danielolaszy/fetchissues/internal/digest"
	"github.com/danielolaszy/fetchissues/internal/fetch"
	"github.com/danielolaszy/fetchissues/internal/history"
	"github.com/danielolaszy/fetchissues/internal/logging"
	"github.com/danielolaszy/fetchissues/internal/registry"
	"github.com/danielolaszy/fetchissues/internal/report"
	"github.com/danielolaszy/fetchissues/internal/tracker"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X github.com/danielolaszy/fetchissues/cmd.Version=..."
var Version = "dev"

var (
	secretsPath  string
	registryPath string
	historyPath  string
	outputDir    string
	logLevel     string
	showSummary  bool
)

var rootCmd = &cobra.Command{
	Use:   "fetch-issues",
	Short: "Build the weekly report of open issues across all trackers",
	Long: `fetch-issues collects the open issues of every configured tracker
(GitHub, Redmine, Trac and Mantis), writes them to a Markdown report named
after the current ISO week (e.g. 2023-W05.md) and records the week in the
history ledger.

A marker file named fetch-out is written next to the report so publishing
tooling can find the latest one.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logging.SetupLogger(cmd.ErrOrStderr(), level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		trackers, err := loadTrackers(registryPath)
		if err != nil {
			return err
		}

		secrets, err := loadSecrets(secretsPath, registry.RequiresSecrets(trackers))
		if err != nil {
			return err
		}

		trackers, err = registry.Resolve(trackers, secrets)
		if err != nil {
			return fmt.Errorf("failed to resolve tracker headers: %w", err)
		}

		logging.Info("starting fetch-issues",
			"version", Version,
			"trackers", len(trackers),
			"history", historyPath,
			"output_dir", outputDir)

		client := fetch.NewClient(nil, secrets.Token(config.GitHubTokenKey))
		result, err := digest.Run(cmd.Context(), digest.Options{
			Trackers:    trackers,
			Fetcher:     client,
			HistoryPath: historyPath,
			OutputDir:   outputDir,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if showSummary {
			if err := report.PrintSummary(out, result.Report.Sections); err != nil {
				return fmt.Errorf("failed to print summary: %w", err)
			}
		}
		report.Announce(out, result.Path, result.Recorded)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultSecrets, err := config.DefaultSecretsPath()
	if err != nil {
		defaultSecrets = config.SecretsFileName
	}

	rootCmd.PersistentFlags().StringVar(&secretsPath, "secrets", defaultSecrets, "JSON file holding tracker secrets")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "YAML file listing the trackers (default: built-in list)")
	rootCmd.PersistentFlags().StringVar(&historyPath, "history", history.DefaultFileName, "history ledger file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", string(logging.LevelInfo), "log level: debug, info, warn or error")
	rootCmd.Flags().StringVarP(&outputDir, "out-dir", "o", ".", "directory receiving the report and the marker file")
	rootCmd.Flags().BoolVar(&showSummary, "summary", true, "print a per-tracker summary table")

	rootCmd.AddCommand(trackersCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadTrackers returns the trackers listed in path, or the built-in list
// when path is empty.
func loadTrackers(path string) ([]tracker.Descriptor, error) {
	if path == "" {
		return registry.Default(), nil
	}
	ds, err := registry.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("loaded registry file", "path", path, "trackers", len(ds))
	return ds, nil
}

// loadSecrets reads the secrets file. A missing or unreadable file is only an
// error when some tracker needs its headers.
func loadSecrets(path string, required bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		logging.Debug("loaded secrets", "path", path)
		return cfg, nil
	}
	if required {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	if errors.Is(err, config.ErrNotFound) {
		logging.Debug("no secrets file", "path", path)
	} else {
		logging.Warn("ignoring unreadable secrets file", "path", path, "error", err)
	}
	return nil, nil
}
