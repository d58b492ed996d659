package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestReadWordSet(t *testing.T) {
	t.Run("word column among others", func(t *testing.T) {
		set, err := ReadWordSet(strings.NewReader("count,Word\n3,FREE\n1, Prize \n2,\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if set.Len() != 2 {
			t.Errorf("Len() = %d, want 2", set.Len())
		}
		for _, w := range []string{"free", "prize"} {
			if !set.Contains(w) {
				t.Errorf("set should contain %q", w)
			}
		}
	})

	t.Run("missing word column", func(t *testing.T) {
		_, err := ReadWordSet(strings.NewReader("term\nfree\n"))
		if !errors.Is(err, ErrMissingWordColumn) {
			t.Errorf("err = %v, want ErrMissingWordColumn", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadWordSet(strings.NewReader(""))
		if !errors.Is(err, ErrMissingWordColumn) {
			t.Errorf("err = %v, want ErrMissingWordColumn", err)
		}
	})
}

func TestLoadReferenceSets(t *testing.T) {
	dir := t.TempDir()
	spamPath := filepath.Join(dir, "spam.csv")
	if err := os.WriteFile(spamPath, []byte("word\nwin\nfree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sets := LoadReferenceSets(spamPath, filepath.Join(dir, "missing.csv"), zap.NewNop())

	if sets.Spam.Len() != 2 {
		t.Errorf("spam Len() = %d, want 2", sets.Spam.Len())
	}
	if sets.Ham == nil || sets.Ham.Len() != 0 {
		t.Errorf("ham set should be empty and non-nil, got %v", sets.Ham)
	}

	sets = LoadReferenceSets("", "", zap.NewNop())
	if sets.Spam.Len() != 0 || sets.Ham.Len() != 0 {
		t.Error("unconfigured lists should load as empty sets")
	}
}

func TestWordSetNilSafe(t *testing.T) {
	var s WordSet
	if s.Contains("free") {
		t.Error("nil set should not contain anything")
	}
	if s.Len() != 0 {
		t.Errorf("nil set Len() = %d, want 0", s.Len())
	}
}
