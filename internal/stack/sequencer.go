// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"context"
	"os"

	"flopods-devstack/internal/config"
	"flopods-devstack/internal/container"
	"flopods-devstack/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Provisioner is the delegate the sequencer hands off to after the
	// infrastructure is back up. The provision package's Provisioner
	// satisfies it; tests substitute a recorder.
	Provisioner interface {
		Run(ctx context.Context) ([]types.StepResult, error)
	}

	// Option configures a Sequencer.
	Option func(*Sequencer)

	// Sequencer destroys and recreates the local infrastructure stack.
	Sequencer struct {
		cfg         *config.Config
		engine      container.Engine
		logger      *log.Logger
		clock       Clock
		provisioner Provisioner
	}
)

// WithLogger sets the structured logger used for phase reporting.
func WithLogger(logger *log.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithClock sets the clock used for the settle delay.
func WithClock(clock Clock) Option {
	return func(s *Sequencer) {
		s.clock = clock
	}
}

// WithProvisioner sets the delegate invoked after the stack is recreated.
// A nil provisioner is tolerated: the hand-off is skipped with a warning.
func WithProvisioner(p Provisioner) Option {
	return func(s *Sequencer) {
		s.provisioner = p
	}
}

// New creates a Sequencer for the given configuration and engine.
func New(cfg *config.Config, engine container.Engine, opts ...Option) *Sequencer {
	s := &Sequencer{
		cfg:    cfg,
		engine: engine,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "reset"}),
		clock:  RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the reset workflow. Each phase fully completes before the next
// begins, and no step's failure aborts the sequence; the returned results
// record how every step ended. The error return covers only context
// cancellation.
func (s *Sequencer) Run(ctx context.Context) ([]types.StepResult, error) {
	var results []types.StepResult

	s.logger.Info("phase 1: stopping containers")
	for _, name := range s.cfg.ContainerNames() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, s.teardown("stop", name, s.engine.Stop(ctx, name)))
	}

	s.logger.Info("phase 2: removing containers")
	for _, name := range s.cfg.ContainerNames() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, s.teardown("remove", name, s.engine.Remove(ctx, name, false)))
	}

	s.logger.Info("phase 3: removing volumes (data deletion)")
	for _, name := range s.cfg.VolumeNames() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, s.teardown("remove-volume", name, s.engine.RemoveVolume(ctx, name)))
	}

	s.logger.Info("phase 4: pruning network", "network", s.cfg.Network)
	results = append(results, s.teardown("remove-network", s.cfg.Network, s.engine.RemoveNetwork(ctx, s.cfg.Network)))

	s.logger.Info("phase 5: starting fresh containers")
	for _, svc := range s.cfg.ComposeServices() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, s.composeUp(ctx, svc))
	}

	s.logger.Info("waiting for containers to settle", "delay", s.cfg.SettleDelay)
	if err := s.clock.Sleep(ctx, s.cfg.SettleDelay); err != nil {
		return results, err
	}

	if s.provisioner == nil {
		s.logger.Warn("no provisioner configured, skipping resource initialization")
		results = append(results, types.StepResult{Op: "provision", Outcome: types.OutcomeSkipped})
		return results, nil
	}

	s.logger.Info("running localstack initialization")
	provResults, err := s.provisioner.Run(ctx)
	results = append(results, provResults...)
	if err != nil {
		return results, err
	}

	return results, nil
}

// teardown classifies a destructive step. Absence of the resource is never a
// hard error: any command failure is treated as "nothing to tear down".
func (s *Sequencer) teardown(op, resource string, err error) types.StepResult {
	if err != nil {
		s.logger.Warn("skipped", "op", op, "resource", resource)
		return types.StepResult{Op: op, Resource: resource, Outcome: types.OutcomeAlreadyAbsent, Err: err}
	}
	s.logger.Info("done", "op", op, "resource", resource)
	return types.StepResult{Op: op, Resource: resource, Outcome: types.OutcomeSucceeded}
}

// composeUp recreates one service from its compose file. A missing file is a
// warning, not an error; a failed compose-up is recorded but does not stop
// the sequence.
func (s *Sequencer) composeUp(ctx context.Context, svc config.ComposeService) types.StepResult {
	if _, err := os.Stat(svc.Path); err != nil {
		s.logger.Warn("compose file not found, skipping service", "service", svc.Name, "path", svc.Path)
		return types.StepResult{Op: "compose-up", Resource: svc.Name, Outcome: types.OutcomeSkipped, Err: err}
	}

	s.logger.Info("starting service", "service", svc.Name, "file", svc.Path)
	if err := s.engine.ComposeUp(ctx, svc.Path); err != nil {
		s.logger.Warn("compose up failed, continuing", "service", svc.Name)
		return types.StepResult{Op: "compose-up", Resource: svc.Name, Outcome: types.OutcomeFailed, Err: err}
	}
	return types.StepResult{Op: "compose-up", Resource: svc.Name, Outcome: types.OutcomeSucceeded}
}
