// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"flopods-devstack/internal/config"
	"flopods-devstack/internal/testutil"
	"flopods-devstack/pkg/types"

	"github.com/charmbracelet/log"
)

// recordingProvisioner counts hand-offs from the sequencer.
type recordingProvisioner struct {
	runs    int
	results []types.StepResult
	err     error
}

func (p *recordingProvisioner) Run(context.Context) ([]types.StepResult, error) {
	p.runs++
	return p.results, p.err
}

func newTestSequencer(t *testing.T, engine *testutil.FakeEngine, prov Provisioner, withComposeFiles bool) (*Sequencer, *config.Config, *testutil.FakeClock) {
	t.Helper()

	dir := t.TempDir()
	cfg, _, err := config.Load(config.LoadOptions{ProjectDir: dir})
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	if withComposeFiles {
		if err := os.MkdirAll(cfg.ComposeDir, 0o755); err != nil {
			t.Fatalf("mkdir compose dir: %v", err)
		}
		for _, svc := range cfg.ComposeServices() {
			if err := os.WriteFile(svc.Path, []byte("services: {}\n"), 0o644); err != nil {
				t.Fatalf("write compose file: %v", err)
			}
		}
	}

	clock := testutil.NewFakeClock(time.Time{})
	opts := []Option{
		WithLogger(log.New(io.Discard)),
		WithClock(clock),
	}
	if prov != nil {
		opts = append(opts, WithProvisioner(prov))
	}
	return New(cfg, engine, opts...), cfg, clock
}

func TestSequencer_Run_PhaseOrder(t *testing.T) {
	t.Parallel()

	engine := testutil.NewFakeEngine()
	prov := &recordingProvisioner{}
	seq, cfg, clock := newTestSequencer(t, engine, prov, true)

	results, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	calls := engine.Calls()
	wantMethods := []string{
		"Stop", "Stop", "Stop",
		"Remove", "Remove", "Remove",
		"RemoveVolume", "RemoveVolume", "RemoveVolume",
		"RemoveNetwork",
		"ComposeUp", "ComposeUp", "ComposeUp",
	}
	if len(calls) != len(wantMethods) {
		t.Fatalf("engine calls = %d, want %d: %+v", len(calls), len(wantMethods), calls)
	}
	for i, c := range calls {
		if c.Method != wantMethods[i] {
			t.Errorf("call %d = %s, want %s", i, c.Method, wantMethods[i])
		}
	}

	// Containers in teardown order, volumes likewise, network last.
	if calls[0].Target != cfg.DBContainer || calls[1].Target != cfg.LocalstackContainer || calls[2].Target != cfg.RedisContainer {
		t.Errorf("stop order = %s, %s, %s", calls[0].Target, calls[1].Target, calls[2].Target)
	}
	if calls[6].Target != cfg.DBVolume || calls[8].Target != cfg.RedisVolume {
		t.Errorf("volume order = %s .. %s", calls[6].Target, calls[8].Target)
	}
	if calls[9].Target != cfg.Network {
		t.Errorf("network target = %s, want %s", calls[9].Target, cfg.Network)
	}

	// Settle delay observed once, with the configured duration.
	sleeps := clock.SleepCalls()
	if len(sleeps) != 1 || sleeps[0] != cfg.SettleDelay {
		t.Errorf("SleepCalls() = %v, want [%v]", sleeps, cfg.SettleDelay)
	}

	// The provisioner is delegated to exactly once, at the end.
	if prov.runs != 1 {
		t.Errorf("provisioner runs = %d, want 1", prov.runs)
	}

	for _, r := range results {
		if r.Outcome != types.OutcomeSucceeded {
			t.Errorf("%s %s outcome = %s, want succeeded", r.Op, r.Resource, r.Outcome)
		}
	}
}

func TestSequencer_Run_TeardownFailuresAreTolerated(t *testing.T) {
	t.Parallel()

	engine := testutil.NewFakeEngine()
	engine.StopErr = errors.New("no such container")
	engine.RemoveErr = errors.New("no such container")
	engine.VolumeErr = errors.New("no such volume")
	engine.NetworkErr = errors.New("no such network")

	prov := &recordingProvisioner{}
	seq, _, _ := newTestSequencer(t, engine, prov, true)

	results, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	absent := 0
	for _, r := range results {
		if r.Outcome == types.OutcomeAlreadyAbsent {
			absent++
			if r.Err == nil {
				t.Errorf("%s %s: already-absent result should carry the cause", r.Op, r.Resource)
			}
		}
	}
	// 3 stops + 3 removes + 3 volumes + 1 network, all absent.
	if absent != 10 {
		t.Errorf("already-absent results = %d, want 10", absent)
	}

	// The sequence still reaches recreation and delegation.
	if got := len(engine.CallsTo("ComposeUp")); got != 3 {
		t.Errorf("ComposeUp calls = %d, want 3", got)
	}
	if prov.runs != 1 {
		t.Errorf("provisioner runs = %d, want 1", prov.runs)
	}
}

func TestSequencer_Run_MissingComposeFilesAreSkipped(t *testing.T) {
	t.Parallel()

	engine := testutil.NewFakeEngine()
	prov := &recordingProvisioner{}
	seq, _, _ := newTestSequencer(t, engine, prov, false)

	results, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := len(engine.CallsTo("ComposeUp")); got != 0 {
		t.Errorf("ComposeUp calls = %d, want 0 when compose files are absent", got)
	}

	skipped := 0
	for _, r := range results {
		if r.Op == "compose-up" {
			if r.Outcome != types.OutcomeSkipped {
				t.Errorf("compose-up %s outcome = %s, want skipped", r.Resource, r.Outcome)
			}
			skipped++
		}
	}
	if skipped != 3 {
		t.Errorf("compose-up results = %d, want 3", skipped)
	}

	// A missing artifact never stops the workflow.
	if prov.runs != 1 {
		t.Errorf("provisioner runs = %d, want 1", prov.runs)
	}
}

func TestSequencer_Run_NilProvisionerWarnsAndContinues(t *testing.T) {
	t.Parallel()

	engine := testutil.NewFakeEngine()
	seq, _, _ := newTestSequencer(t, engine, nil, true)

	results, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	last := results[len(results)-1]
	if last.Op != "provision" || last.Outcome != types.OutcomeSkipped {
		t.Errorf("last result = %+v, want skipped provision hand-off", last)
	}
}

func TestSequencer_Run_CanceledContextStopsBeforeSideEffects(t *testing.T) {
	t.Parallel()

	engine := testutil.NewFakeEngine()
	prov := &recordingProvisioner{}
	seq, _, _ := newTestSequencer(t, engine, prov, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := seq.Run(ctx); err == nil {
		t.Fatal("Run() error = nil, want context error")
	}
	if got := len(engine.Calls()); got != 0 {
		t.Errorf("engine calls = %d, want 0 after pre-canceled context", got)
	}
	if prov.runs != 0 {
		t.Errorf("provisioner runs = %d, want 0", prov.runs)
	}
}

func TestSequencer_Run_ComposeFailureRecordedNotFatal(t *testing.T) {
	t.Parallel()

	engine := testutil.NewFakeEngine()
	engine.ComposeErr = errors.New("port already allocated")
	prov := &recordingProvisioner{}
	seq, _, _ := newTestSequencer(t, engine, prov, true)

	results, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	failed := 0
	for _, r := range results {
		if r.Op == "compose-up" && r.Outcome == types.OutcomeFailed {
			failed++
		}
	}
	if failed != 3 {
		t.Errorf("failed compose-up results = %d, want 3", failed)
	}
	if prov.runs != 1 {
		t.Errorf("provisioner runs = %d, want 1", prov.runs)
	}
}

func TestSequencer_ProvisionerResultsAppended(t *testing.T) {
	t.Parallel()

	engine := testutil.NewFakeEngine()
	prov := &recordingProvisioner{
		results: []types.StepResult{
			{Op: "create-bucket", Resource: "flopods-documents-dev", Outcome: types.OutcomeSucceeded},
		},
	}
	seq, _, _ := newTestSequencer(t, engine, prov, true)

	results, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	last := results[len(results)-1]
	if last.Op != "create-bucket" {
		t.Errorf("last result op = %s, want create-bucket from the provisioner", last.Op)
	}
}
