package topics

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTopicsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write topics file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeTopicsFile(t, `
topics:
  - key: constitutional-law
    label: Constitutional law
    class: Q1153222
  - label: Human rights
    class: Q8458
`)

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(config.Topics) != 2 {
		t.Fatalf("loaded %d topics, want 2", len(config.Topics))
	}
	if config.Topics[0].Key != "constitutional-law" || config.Topics[0].Class != "Q1153222" {
		t.Errorf("first topic = %+v", config.Topics[0])
	}
	if config.Topics[1].Key != "" {
		t.Errorf("second topic key = %q, want empty", config.Topics[1].Key)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load(); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestLoaderInvalidYAML(t *testing.T) {
	path := writeTopicsFile(t, "topics: [unclosed")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load should fail for invalid yaml")
	}
}
