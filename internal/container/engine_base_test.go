// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"slices"
	"testing"
)

func newTestEngine(t *testing.T, rec *MockCommandRecorder) *BaseCLIEngine {
	t.Helper()
	return NewBaseCLIEngine("docker", WithName("docker"), WithExecCommand(rec.CommandFunc(t)))
}

func TestBaseCLIEngine_StopArgs(t *testing.T) {
	t.Parallel()

	e := NewBaseCLIEngine("docker")
	got := e.StopArgs("flopods-db")
	want := []string{"stop", "flopods-db"}
	if !slices.Equal(got, want) {
		t.Errorf("StopArgs() = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_RemoveArgs(t *testing.T) {
	t.Parallel()

	e := NewBaseCLIEngine("docker")

	got := e.RemoveArgs("localstack", false)
	want := []string{"rm", "localstack"}
	if !slices.Equal(got, want) {
		t.Errorf("RemoveArgs(force=false) = %v, want %v", got, want)
	}

	got = e.RemoveArgs("localstack", true)
	want = []string{"rm", "-f", "localstack"}
	if !slices.Equal(got, want) {
		t.Errorf("RemoveArgs(force=true) = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_VolumeRemoveArgs(t *testing.T) {
	t.Parallel()

	e := NewBaseCLIEngine("podman")
	got := e.VolumeRemoveArgs("flopods_db_data")
	want := []string{"volume", "rm", "flopods_db_data"}
	if !slices.Equal(got, want) {
		t.Errorf("VolumeRemoveArgs() = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_NetworkRemoveArgs(t *testing.T) {
	t.Parallel()

	e := NewBaseCLIEngine("docker")
	got := e.NetworkRemoveArgs("flopods_network")
	want := []string{"network", "rm", "flopods_network"}
	if !slices.Equal(got, want) {
		t.Errorf("NetworkRemoveArgs() = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_ComposeUpArgs(t *testing.T) {
	t.Parallel()

	e := NewBaseCLIEngine("docker")
	got := e.ComposeUpArgs("/proj/docker/db-docker-compose.yaml")
	want := []string{"compose", "-f", "/proj/docker/db-docker-compose.yaml", "up", "-d"}
	if !slices.Equal(got, want) {
		t.Errorf("ComposeUpArgs() = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_ExecArgs(t *testing.T) {
	t.Parallel()

	e := NewBaseCLIEngine("docker")
	got := e.ExecArgs("localstack", []string{"awslocal", "s3", "ls"}, ExecOptions{
		Env: map[string]string{
			"B_VAR": "2",
			"A_VAR": "1",
		},
	})
	// Env pairs are sorted by key for deterministic argv.
	want := []string{"exec", "-e", "A_VAR=1", "-e", "B_VAR=2", "localstack", "awslocal", "s3", "ls"}
	if !slices.Equal(got, want) {
		t.Errorf("ExecArgs() = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_ExecArgs_WorkDir(t *testing.T) {
	t.Parallel()

	e := NewBaseCLIEngine("docker")
	got := e.ExecArgs("localstack", []string{"ls"}, ExecOptions{WorkDir: "/tmp"})
	want := []string{"exec", "-w", "/tmp", "localstack", "ls"}
	if !slices.Equal(got, want) {
		t.Errorf("ExecArgs() = %v, want %v", got, want)
	}
}

func TestBaseCLIEngine_Stop_InvokesBinary(t *testing.T) {
	rec := NewMockCommandRecorder()
	e := newTestEngine(t, rec)

	if err := e.Stop(context.Background(), "flopods-db"); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	rec.AssertInvocationCount(t, 1)
	rec.AssertArgsEqual(t, []string{"stop", "flopods-db"})
}

func TestBaseCLIEngine_Stop_ErrorOnNonZeroExit(t *testing.T) {
	rec := NewMockCommandRecorder()
	rec.ExitCode = 1
	e := newTestEngine(t, rec)

	if err := e.Stop(context.Background(), "flopods-db"); err == nil {
		t.Fatal("Stop() error = nil, want non-nil for exit code 1")
	}
}

func TestBaseCLIEngine_Exec_CapturesExitCode(t *testing.T) {
	rec := NewMockCommandRecorder()
	rec.ExitCode = 254
	e := newTestEngine(t, rec)

	result, err := e.Exec(context.Background(), "localstack", []string{"awslocal", "s3", "ls"}, ExecOptions{})
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if result.ExitCode != 254 {
		t.Errorf("ExitCode = %d, want 254", result.ExitCode)
	}
	if result.Error != nil {
		t.Errorf("Error = %v, want nil (exit codes are not infrastructure failures)", result.Error)
	}
	if result.Ok() {
		t.Error("Ok() = true, want false")
	}
}

func TestBaseCLIEngine_Exec_WritesOutput(t *testing.T) {
	rec := NewMockCommandRecorder()
	rec.Stdout = "flopods-documents-dev\n"
	e := newTestEngine(t, rec)

	var out bytes.Buffer
	result, err := e.Exec(context.Background(), "localstack", []string{"awslocal", "s3", "ls"}, ExecOptions{Stdout: &out})
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if !result.Ok() {
		t.Errorf("Ok() = false, result = %+v", result)
	}
	if out.String() != "flopods-documents-dev\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestBaseCLIEngine_ComposeUp_InvokesBinary(t *testing.T) {
	rec := NewMockCommandRecorder()
	e := newTestEngine(t, rec)

	if err := e.ComposeUp(context.Background(), "db.yaml"); err != nil {
		t.Fatalf("ComposeUp() error = %v", err)
	}
	if !rec.HasArgPair("-f", "db.yaml") {
		t.Errorf("compose args missing -f db.yaml: %v", rec.LastArgs())
	}
}
