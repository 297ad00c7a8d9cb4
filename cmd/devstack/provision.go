// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"flopods-devstack/internal/container"
	"flopods-devstack/internal/provision"

	"github.com/spf13/cobra"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create AWS resources inside the LocalStack container",
	Long: `Create AWS resources inside the LocalStack container.

This creates the S3 buckets, DynamoDB tables, SES email identities, and
SQS queues the flopods application expects, then prints the resulting
resource listings for inspection. Resources that already exist are left
untouched, so the command is safe to re-run.`,
	RunE: runProvision,
}

func runProvision(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := container.NewEngine(container.EngineType(cfg.ContainerEngine))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prov := provision.New(cfg, engine, provision.WithOutput(out))

	results, err := prov.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out, WarningStyle.Render("Interrupted; provisioning is incomplete."))
			return nil
		}
		return err
	}

	fmt.Fprint(out, renderSummary(results))
	return nil
}
