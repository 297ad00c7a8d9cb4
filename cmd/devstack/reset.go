// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"flopods-devstack/internal/config"
	"flopods-devstack/internal/container"
	"flopods-devstack/internal/provision"
	"flopods-devstack/internal/stack"

	"github.com/spf13/cobra"
)

var (
	// assumeYes skips the interactive confirmation prompt
	assumeYes bool

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Destroy and recreate the local development stack",
		Long: `Destroy and recreate the local development stack.

This stops and removes the database, LocalStack, and Redis containers,
deletes their volumes (ALL LOCAL DATA IS LOST), removes the shared
network, starts fresh containers from the compose files, and then
provisions the LocalStack AWS resources.`,
		RunE: runReset,
	}
)

func init() {
	resetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printResetWarning(out, cfg)

	if !assumeYes {
		if !confirmReset(cmd.InOrStdin(), out) {
			fmt.Fprintln(out, SubtitleStyle.Render("Reset cancelled."))
			return nil
		}
	}

	engine, err := container.NewEngine(container.EngineType(cfg.ContainerEngine))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, SubtitleStyle.Render("Using container engine: ")+ResourceStyle.Render(engine.Name()))

	prov := provision.New(cfg, engine, provision.WithOutput(out))
	seq := stack.New(cfg, engine, stack.WithProvisioner(prov))

	results, err := seq.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out, WarningStyle.Render("Interrupted; the stack may be in a partial state."))
			return nil
		}
		return err
	}

	fmt.Fprint(out, renderSummary(results))
	return nil
}

// printResetWarning lists everything the reset will destroy before the
// confirmation gate.
func printResetWarning(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, TitleStyle.Render("flopods local stack reset"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, WarningStyle.Render("This will permanently delete:"))
	for _, name := range cfg.ContainerNames() {
		fmt.Fprintf(w, "  - container %s\n", ResourceStyle.Render(name))
	}
	for _, name := range cfg.VolumeNames() {
		fmt.Fprintf(w, "  - volume %s %s\n", ResourceStyle.Render(name), ErrorStyle.Render("(all data)"))
	}
	fmt.Fprintf(w, "  - network %s\n", ResourceStyle.Render(cfg.Network))
	fmt.Fprintln(w)
}

// confirmReset reads one line from r and accepts only an exact "yes",
// case-insensitively and ignoring surrounding whitespace. Any other input,
// including EOF, declines.
func confirmReset(r io.Reader, w io.Writer) bool {
	fmt.Fprint(w, "Type 'yes' to continue: ")
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}
	return strings.ToLower(strings.TrimSpace(scanner.Text())) == "yes"
}
