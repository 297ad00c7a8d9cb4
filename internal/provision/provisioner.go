// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"io"
	"os"

	"flopods-devstack/internal/config"
	"flopods-devstack/internal/container"
	"flopods-devstack/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Option configures a Provisioner.
	Option func(*Provisioner)

	// Provisioner converges the local AWS emulator towards the resource
	// catalogue derived from the configuration. All calls run inside the
	// localstack container through the engine's exec mechanism.
	Provisioner struct {
		cfg       *config.Config
		engine    container.Engine
		catalogue Catalogue
		logger    *log.Logger
		out       io.Writer
	}
)

// WithLogger sets the structured logger used for step reporting.
func WithLogger(logger *log.Logger) Option {
	return func(p *Provisioner) {
		p.logger = logger
	}
}

// WithOutput sets the writer that receives raw verification listings.
func WithOutput(w io.Writer) Option {
	return func(p *Provisioner) {
		p.out = w
	}
}

// New creates a Provisioner for the given configuration and engine.
func New(cfg *config.Config, engine container.Engine, opts ...Option) *Provisioner {
	p := &Provisioner{
		cfg:       cfg,
		engine:    engine,
		catalogue: BuildCatalogue(cfg),
		logger:    log.NewWithOptions(os.Stderr, log.Options{Prefix: "provision"}),
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Catalogue returns the resource catalogue the provisioner converges towards.
func (p *Provisioner) Catalogue() Catalogue {
	return p.catalogue
}

// Run applies the catalogue and then prints the verification listings.
// It never fails on individual resources; the returned error covers only
// context cancellation.
func (p *Provisioner) Run(ctx context.Context) ([]types.StepResult, error) {
	results, err := p.Apply(ctx)
	if err != nil {
		return results, err
	}
	p.Verify(ctx)
	return results, nil
}

// Apply issues one creation call per catalogue entry. A failed call is
// reported as already-exists and the run continues: the provisioner never
// distinguishes "already exists" from other causes, an accepted
// simplification for a local development tool.
func (p *Provisioner) Apply(ctx context.Context) ([]types.StepResult, error) {
	results := make([]types.StepResult, 0,
		len(p.catalogue.Buckets)+len(p.catalogue.Tables)+len(p.catalogue.Identities)+len(p.catalogue.Queues))

	p.logger.Info("creating S3 buckets", "count", len(p.catalogue.Buckets))
	for _, b := range p.catalogue.Buckets {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, p.create(ctx, "create-bucket", b.Name, b.CreateArgs()))
	}

	p.logger.Info("creating DynamoDB tables", "count", len(p.catalogue.Tables))
	for _, t := range p.catalogue.Tables {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, p.create(ctx, "create-table", t.Name, t.CreateArgs()))
	}

	p.logger.Info("registering SES identities", "count", len(p.catalogue.Identities))
	for _, i := range p.catalogue.Identities {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, p.create(ctx, "verify-email-identity", i.Address, i.CreateArgs()))
	}

	p.logger.Info("creating SQS queues", "count", len(p.catalogue.Queues))
	for _, q := range p.catalogue.Queues {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, p.create(ctx, "create-queue", q.Name, q.CreateArgs()))
	}

	return results, nil
}

// create issues a single creation call and classifies the result.
func (p *Provisioner) create(ctx context.Context, op, resource string, argv []string) types.StepResult {
	result, err := p.engine.Exec(ctx, p.cfg.LocalstackContainer, argv, container.ExecOptions{
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	if err == nil && result.Ok() {
		p.logger.Info("created", "op", op, "resource", resource)
		return types.StepResult{Op: op, Resource: resource, Outcome: types.OutcomeSucceeded}
	}

	cause := err
	if cause == nil {
		cause = result.Error
	}
	p.logger.Warn("skipped, may already exist", "op", op, "resource", resource)
	return types.StepResult{Op: op, Resource: resource, Outcome: types.OutcomeAlreadyExists, Err: cause}
}

// Verify lists buckets, tables, and queues, writing raw CLI output for
// operator inspection. Listing failures are logged and otherwise ignored; no
// output is parsed or asserted against the catalogue.
func (p *Provisioner) Verify(ctx context.Context) {
	listings := []struct {
		title string
		argv  []string
	}{
		{"S3 buckets", []string{"awslocal", "s3", "ls", "--region", p.cfg.Region}},
		{"DynamoDB tables", []string{"awslocal", "dynamodb", "list-tables", "--region", p.cfg.Region}},
		{"SQS queues", []string{"awslocal", "sqs", "list-queues", "--region", p.cfg.Region}},
	}

	for _, l := range listings {
		p.logger.Info("listing", "what", l.title)
		result, err := p.engine.Exec(ctx, p.cfg.LocalstackContainer, l.argv, container.ExecOptions{
			Stdout: p.out,
			Stderr: p.out,
		})
		if err != nil || !result.Ok() {
			p.logger.Warn("listing failed", "what", l.title)
		}
	}
}
