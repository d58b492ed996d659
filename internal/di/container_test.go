package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/spam-insight/internal/batch"
	"github.com/mikey/spam-insight/internal/core"
	"github.com/mikey/spam-insight/internal/ports"
)

const testModel = `{
  "name": "test",
  "vocabulary": {"free": 0, "prize": 1, "meet": 2, "lunch": 3},
  "class_log_prior": [-0.6931, -0.6931],
  "feature_log_prob": [
    [-2.3026, -2.3026, -0.9163, -0.9163],
    [-0.9163, -0.9163, -2.3026, -2.3026]
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCLIOptions(t *testing.T) CLIOptions {
	dir := t.TempDir()
	return CLIOptions{
		Renderer: "plain",
		Overrides: map[string]any{
			"classifier.provider":     "naive_bayes",
			"classifier.model_path":   writeFile(t, dir, "model.json", testModel),
			"lexicon.spam_words_path": writeFile(t, dir, "spam.csv", "word\nfree\nprize\n"),
			"lexicon.ham_words_path":  writeFile(t, dir, "ham.csv", "word\nlunch\n"),
			"batch.workers":           2,
		},
	}
}

func TestBuildCLIContainer(t *testing.T) {
	container, err := BuildCLIContainer(testCLIOptions(t))
	if err != nil {
		t.Fatalf("BuildCLIContainer: %v", err)
	}

	err = container.Invoke(func(svc *core.AnalysisService, runner *batch.Runner, filter ports.EmailFilter) {
		result, err := svc.Analyze(context.Background(), "Claim your free prize")
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if !result.Prediction.IsSpam() {
			t.Errorf("got label %q, want spam", result.Prediction.Label)
		}
		if got, want := result.Prediction.ModelUsed, "naive_bayes:test"; got != want {
			t.Errorf("got model %q, want %q", got, want)
		}
		if result.Cached {
			t.Error("the CLI must not cache predictions")
		}

		outcomes, err := runner.Run(context.Background(), []string{"lunch?", "free prize"})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if s := batch.Summarize(outcomes); s.Analyzed != 2 {
			t.Errorf("got %+v, want 2 analyzed", s)
		}
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
}

func TestBuildCLIContainerAnnotateCapsInput(t *testing.T) {
	opts := testCLIOptions(t)
	opts.Overrides["analysis.max_input_size"] = 9

	container, err := BuildCLIContainer(opts)
	if err != nil {
		t.Fatalf("BuildCLIContainer: %v", err)
	}
	err = container.Invoke(func(svc *core.AnalysisService) {
		if got := svc.Annotate("Claim your free prize").Text(); got != "Claim you" {
			t.Errorf("got %q, want %q", got, "Claim you")
		}
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
}

func TestBuildCLIContainerMissingModel(t *testing.T) {
	opts := testCLIOptions(t)
	opts.Overrides["classifier.model_path"] = filepath.Join(t.TempDir(), "missing.json")

	container, err := BuildCLIContainer(opts)
	if err != nil {
		t.Fatalf("BuildCLIContainer: %v", err)
	}
	if err := container.Invoke(func(*core.AnalysisService) {}); err == nil {
		t.Error("expected a missing model to fail the service construction")
	}
}
