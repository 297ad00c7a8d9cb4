// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"flopods-devstack/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// envFile allows specifying a custom .env file
	envFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "devstack",
		Short: "Local development stack tooling for flopods",
		Long: TitleStyle.Render("devstack") + SubtitleStyle.Render(" - local development stack tooling for flopods") + `

devstack manages the flopods local development infrastructure: the
PostgreSQL, LocalStack, and Redis containers, their volumes and
network, and the AWS resources emulated inside LocalStack.

` + SubtitleStyle.Render("Examples:") + `
  devstack reset            Destroy and recreate the full local stack
  devstack reset --yes      Same, skipping the confirmation prompt
  devstack provision        Create LocalStack AWS resources only`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to the .env file (default: ./.env, then ../.env)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(provisionCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration for a command run and surfaces any
// non-fatal warnings (such as an unrecognized CONTAINER_RUNTIME value).
func loadConfig() (*config.Config, error) {
	cfg, warnings, err := config.Load(config.LoadOptions{EnvFilePath: envFile})
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+w)
	}
	return cfg, nil
}
