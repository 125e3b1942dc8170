// Package cmd implements the xdom CLI commands.
//
// The root command resolves the optional xdom.yaml of the project directory
// and installs the logrus-backed error handler before any subcommand runs.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-drift/xdom/cmd/xdom/internal/config"
	"github.com/go-drift/xdom/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var (
	projectDir string
	verbose    bool

	resolved *config.Resolved
	logger   = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "xdom",
	Short: "xdom - reactive HTML surfaces driven by a frame scheduler",
	Long: `xdom renders a demo application built from observable models,
bindings and a shadow tree kept in step with an HTML document.

Use "xdom <command> --help" for more information about a command.`,
	Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		res, err := config.Resolve(projectDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		resolved = res

		logger.SetLevel(res.LogLevel)
		if verbose {
			res.Verbose = true
			logger.SetLevel(logrus.DebugLevel)
		}
		errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: res.Verbose})
		logger.WithFields(logrus.Fields{
			"app":  res.AppName,
			"root": res.Root,
		}).Debug("configuration resolved")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", ".", "project directory holding xdom.yaml")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging with stack traces")
}

// RegisterCommand adds a subcommand to the CLI.
func RegisterCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("command failed")
		return err
	}
	return nil
}
