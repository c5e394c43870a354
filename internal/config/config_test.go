package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Chunker.ChunkSize != 500 || cfg.Chunker.ChunkOverlap != 50 {
		t.Fatalf("unexpected chunker defaults: %+v", cfg.Chunker)
	}
	if cfg.Completion.Model != "gpt-4" || cfg.Completion.MaxTokens != 1000 {
		t.Fatalf("unexpected completion defaults: %+v", cfg.Completion)
	}
	if cfg.Memory.SnippetWindow != 3 || cfg.Memory.SearchMessages != 4 {
		t.Fatalf("unexpected memory defaults: %+v", cfg.Memory)
	}
	if cfg.Embedder.OpenAI == nil || cfg.Embedder.OpenAI.Model != "text-embedding-3-small" {
		t.Fatalf("unexpected embedder defaults: %+v", cfg.Embedder)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Embedder.Type = "tfidf"
	cfg.Completion.Provider = "anthropic"
	cfg.Completion.Model = "claude-sonnet-4-0"
	cfg.Memory.SnippetWindow = 5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Embedder.Type != "tfidf" {
		t.Fatalf("embedder type = %q", loaded.Embedder.Type)
	}
	if loaded.Completion.Provider != "anthropic" || loaded.Completion.Model != "claude-sonnet-4-0" {
		t.Fatalf("completion not round-tripped: %+v", loaded.Completion)
	}
	if loaded.Memory.SnippetWindow != 5 {
		t.Fatalf("snippet window = %d", loaded.Memory.SnippetWindow)
	}
}

func TestLoadFillsPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := []byte("chunker:\n  type: chars\n  chunk_size: 200\n")
	if err := os.WriteFile(path, partial, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Chunker.ChunkSize != 200 {
		t.Fatalf("explicit value overridden: %d", cfg.Chunker.ChunkSize)
	}
	if cfg.Chunker.ChunkOverlap != 50 {
		t.Fatalf("missing value not defaulted: %d", cfg.Chunker.ChunkOverlap)
	}
	if cfg.Completion.TimeoutSecs != 120 {
		t.Fatalf("completion timeout not defaulted: %d", cfg.Completion.TimeoutSecs)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("chunker: [unclosed"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
