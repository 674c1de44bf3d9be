package scenario_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spachava753/howmanytries/internal/executor"
	"github.com/spachava753/howmanytries/internal/scenario"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadFromPathFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "coins.toml", "[[scenario]]\nname = \"heads\"\nsuccess_rate = 50\n")

	suites, err := scenario.NewLoader().LoadFromPath(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if len(suites) != 1 {
		t.Fatalf("expected 1 suite, got %d", len(suites))
	}
	if suites[0].Path != path {
		t.Errorf("expected path %s, got %s", path, suites[0].Path)
	}
	if suites[0].Scenarios[0].Name != "heads" {
		t.Errorf("expected scenario heads, got %s", suites[0].Scenarios[0].Name)
	}
}

func TestLoadFromPathDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.toml", "[[scenario]]\nsuccess_rate = 50\n")
	writeFile(t, dir, "b.toml", "[[scenario]]\nsuccess_rate = 10\n[[scenario]]\nsuccess_rate = 20\n")
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	suites, err := scenario.NewLoader().LoadFromPath(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if len(suites) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(suites))
	}
	if suites[0].Name != "a" || suites[1].Name != "b" {
		t.Errorf("unexpected suite names %s, %s", suites[0].Name, suites[1].Name)
	}
}

func TestLoadFromPathEmptyDirectory(t *testing.T) {
	if _, err := scenario.NewLoader().LoadFromPath(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error for directory without suites")
	}
}

func TestRunnerRecordsPerScenarioOutcome(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mixed.toml", `trials = 3

[[scenario]]
name = "certain"
success_rate = 100

[[scenario]]
name = "zero"
success_rate = 0

[[scenario]]
name = "capped"
success_rate = 100
max_attempts = 2.5
`)

	suites, err := scenario.NewLoader().LoadFromPath(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	sim := executor.NewSimulator(executor.DefaultOptions(), executor.SeededStreamsFunc(5))
	summary, err := scenario.NewRunner(sim, 2).Run(context.Background(), suites)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Total != 3 {
		t.Fatalf("expected 3 results, got %d", summary.Total)
	}
	if summary.Completed != 1 || summary.Rejected != 2 || summary.Failed != 0 {
		t.Errorf("expected 1 completed, 2 rejected, 0 failed; got %d/%d/%d",
			summary.Completed, summary.Rejected, summary.Failed)
	}

	certain := summary.Results[0]
	if certain.Err != nil {
		t.Fatalf("certain scenario failed: %v", certain.Err)
	}
	if certain.Report.TotalSuccesses != 3 {
		t.Errorf("expected suite trial count 3 to apply, got %d successes", certain.Report.TotalSuccesses)
	}
	if summary.Results[1].Scenario.Name != "zero" || summary.Results[1].Err == nil {
		t.Error("expected zero-rate scenario to be rejected")
	}
}

func TestRunnerReturnsCancellation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "slow.toml", `trials = 5

[[scenario]]
name = "needle"
success_rate = 0.0000001
max_attempts = "10M"
`)

	suites, err := scenario.NewLoader().LoadFromPath(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	sim := executor.NewSimulator(executor.DefaultOptions(), executor.SeededStreamsFunc(5))
	summary, err := scenario.NewRunner(sim, 1).Run(ctx, suites)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got summary %+v, err %v", summary, err)
	}
	if summary != nil {
		t.Errorf("expected no summary for a cancelled run, got %+v", summary)
	}
}
