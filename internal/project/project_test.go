package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLoad(t *testing.T) {
	dir := t.TempDir()

	if err := Init(dir, []string{"claude-code", "cursor"}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Tools) != 2 || cfg.Tools[0] != "claude-code" || cfg.Tools[1] != "cursor" {
		t.Errorf("unexpected tools: %v", cfg.Tools)
	}
	if len(cfg.Modules) != 0 {
		t.Errorf("expected no modules in a fresh project, got %v", cfg.Modules)
	}
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := t.TempDir()

	if err := Init(dir, []string{"claude-code"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	err := Init(dir, []string{"copilot"})
	if err == nil {
		t.Fatal("expected error re-initializing an existing project")
	}
	if !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("unexpected error: %v", err)
	}

	// The original selection must survive.
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0] != "claude-code" {
		t.Errorf("original tools clobbered: %v", cfg.Tools)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, capkitDir), 0755); err != nil {
		t.Fatal(err)
	}

	want := &Config{
		Tools:   []string{"opencode"},
		Modules: []string{"team-go", "team-web"},
	}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Modules) != 2 || got.Modules[0] != "team-go" || got.Modules[1] != "team-web" {
		t.Errorf("modules did not round-trip: %v", got.Modules)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error loading a missing project config")
	}
}

func TestParseToolName(t *testing.T) {
	tests := []struct {
		in    string
		want  ToolName
		valid bool
	}{
		{"claude-code", ClaudeCode, true},
		{"cursor", Cursor, true},
		{"copilot", Copilot, true},
		{"opencode", OpenCode, true},
		{"emacs", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseToolName(tt.in)
		if ok != tt.valid || got != tt.want {
			t.Errorf("ParseToolName(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}

func TestTargetDir(t *testing.T) {
	got := ClaudeCode.TargetDir("/repo")
	want := filepath.Join("/repo", ".claude", "kits")
	if got != want {
		t.Errorf("TargetDir = %q, want %q", got, want)
	}
}
