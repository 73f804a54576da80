//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/capkit-labs/capkit/internal/project"
	"github.com/capkit-labs/capkit/internal/registry"
	"github.com/capkit-labs/capkit/internal/scaffold"
	"github.com/capkit-labs/capkit/internal/userdata"
)

// TestEndToEnd walks the whole lifecycle: global init, kit authoring,
// project setup, sync into tool targets, re-sync, and prune on deselection.
func TestEndToEnd(t *testing.T) {
	env := setupTestEnv(t)

	// --- Global init seeds the layout and a starter kit. ---
	if err := userdata.InitGlobal(&bytes.Buffer{}); err != nil {
		t.Fatalf("InitGlobal: %v", err)
	}

	// --- Author a kit into the core catalog via the scaffold. ---
	kitsDir := filepath.Join(catalogRootDir(t), registry.DefaultKitsDir)
	result, err := scaffold.Generate(
		scaffold.NewData("code-review", "Review Go code"),
		filepath.Join(kitsDir, "code-review"),
	)
	if err != nil {
		t.Fatalf("scaffold.Generate: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("scaffolded kit has validation warnings: %v", result.Warnings)
	}

	// --- A module contributes one more kit. ---
	mod := moduleRootDir(t, "team-go")
	writeKit(t, mod, "error-handling", "---\nname: error-handling\ndescription: Wrap errors with context\n---\n", map[string]string{
		"examples/wrap.md": "use %w\n",
	})

	// --- Project setup declares tools and the module selection. ---
	if err := project.Init(env.ProjectDir, []string{"claude-code", "cursor"}); err != nil {
		t.Fatalf("project.Init: %v", err)
	}
	cfg, err := project.Load(env.ProjectDir)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Modules = []string{"team-go"}
	if err := project.Save(env.ProjectDir, cfg); err != nil {
		t.Fatal(err)
	}

	// --- Discover once, sync every tool target. ---
	d := discoverer(t)
	catalog, diags := d.Discover(cfg.Modules)
	if len(diags) != 0 {
		t.Fatalf("discovery diagnostics: %v", diags)
	}
	// getting-started (starter), code-review, error-handling.
	if len(catalog) != 3 {
		t.Fatalf("len(catalog) = %d, want 3", len(catalog))
	}

	var targets []string
	for _, name := range cfg.Tools {
		tool, ok := project.ParseToolName(name)
		if !ok {
			t.Fatalf("unknown tool %q", name)
		}
		targets = append(targets, tool.TargetDir(env.ProjectDir))
	}

	for _, target := range targets {
		result := registry.Sync(target, catalog)
		if result.Installed != 3 || len(result.Errors) != 0 {
			t.Fatalf("sync %s: %+v", target, result)
		}
	}

	for _, target := range targets {
		for _, kit := range []string{"getting-started", "code-review", "error-handling"} {
			if _, err := os.Stat(filepath.Join(target, kit, "KIT.md")); err != nil {
				t.Errorf("%s missing in %s: %v", kit, target, err)
			}
		}
	}
	if _, err := os.Stat(filepath.Join(targets[0], "error-handling", "examples", "wrap.md")); err != nil {
		t.Errorf("kit resources not copied: %v", err)
	}

	// --- Re-sync picks up source edits and drops stale files. ---
	editedKit := filepath.Join(mod, registry.DefaultKitsDir, "error-handling")
	if err := os.Remove(filepath.Join(editedKit, "examples", "wrap.md")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(editedKit, "checklist.md"), []byte("- wrap\n"), 0644); err != nil {
		t.Fatal(err)
	}

	catalog, _ = d.Discover(cfg.Modules)
	if r := registry.Sync(targets[0], catalog); r.Installed != 3 {
		t.Fatalf("re-sync: %+v", r)
	}
	if _, err := os.Stat(filepath.Join(targets[0], "error-handling", "examples", "wrap.md")); !os.IsNotExist(err) {
		t.Error("stale kit file survived re-sync")
	}
	if _, err := os.Stat(filepath.Join(targets[0], "error-handling", "checklist.md")); err != nil {
		t.Error("edited kit file missing after re-sync")
	}

	// --- Deselecting the module prunes its kit from the target. ---
	catalog, _ = d.Discover(nil)
	if r := registry.Sync(targets[0], catalog); r.Installed != 2 {
		t.Fatalf("prune sync: %+v", r)
	}
	if _, err := os.Stat(filepath.Join(targets[0], "error-handling")); !os.IsNotExist(err) {
		t.Error("deselected module kit survived")
	}
	for _, kit := range []string{"getting-started", "code-review"} {
		if _, err := os.Stat(filepath.Join(targets[0], kit)); err != nil {
			t.Errorf("%s pruned by mistake: %v", kit, err)
		}
	}

	// The second target was not part of the prune pass and still holds all
	// three kits; passes are independent per target.
	if _, err := os.Stat(filepath.Join(targets[1], "error-handling")); err != nil {
		t.Errorf("independent target affected by another target's pass: %v", err)
	}
}

// TestUserContentSurvivesSync pins the ownership boundary: the engine only
// ever touches directories whose names are in the catalog.
func TestUserContentSurvivesSync(t *testing.T) {
	env := setupTestEnv(t)

	writeKit(t, catalogRootDir(t), "alpha", "---\nname: alpha\ndescription: a\n---\n", nil)

	target := filepath.Join(env.ProjectDir, ".claude", "kits")
	if err := os.MkdirAll(filepath.Join(target, "hand-written"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "hand-written", "notes.md"), []byte("precious\n"), 0644); err != nil {
		t.Fatal(err)
	}

	d := discoverer(t)

	// Two passes, then an empty-selection pass; user content survives all.
	for i := 0; i < 2; i++ {
		catalog, _ := d.Discover(nil)
		if r := registry.Sync(target, catalog); r.Installed != 1 || len(r.Errors) != 0 {
			t.Fatalf("pass %d: %+v", i, r)
		}
	}
	if r := registry.Sync(target, nil); r.Installed != 0 {
		t.Fatalf("empty pass: %+v", r)
	}

	data, err := os.ReadFile(filepath.Join(target, "hand-written", "notes.md"))
	if err != nil || string(data) != "precious\n" {
		t.Errorf("user content damaged: %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(target, "alpha", "KIT.md")); err != nil {
		t.Errorf("managed kit missing: %v", err)
	}
}
