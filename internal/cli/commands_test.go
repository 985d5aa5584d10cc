package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snapgraph/snapgraph/pkg/document"
)

// runCLI executes the root command with the given arguments.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// writeTestConfig writes a config that keeps all state inside dir.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[store]\ndir = %q\n\n[cache]\ndisabled = true\n", filepath.Join(dir, "docs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDemoValidateRoundtrip(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	doc := filepath.Join(dir, "demo.json")

	if err := runCLI(t, "--config", cfg, "demo", "-o", doc); err != nil {
		t.Fatalf("demo: %v", err)
	}
	if err := runCLI(t, "--config", cfg, "validate", doc); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := runCLI(t, "--config", cfg, "roundtrip", doc); err != nil {
		t.Fatalf("roundtrip: %v", err)
	}
}

func TestValidateRejectsBrokenDocument(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte(`{"components": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, "--config", cfg, "validate", path); err == nil {
		t.Error("expected validation failure")
	}
}

func TestLayoutFillsPivots(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	path := filepath.Join(dir, "demo.json")

	if err := runCLI(t, "--config", cfg, "demo", "-o", path); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "placed.json")
	if err := runCLI(t, "--config", cfg, "layout", path, "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}

	doc, err := document.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, comp := range doc.Components {
		if comp.Pivot == nil {
			t.Errorf("%s has no pivot after layout", comp.Name)
		}
	}
}

func TestRenderDOT(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	path := filepath.Join(dir, "demo.json")

	if err := runCLI(t, "--config", cfg, "demo", "-o", path); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "demo.dot")
	if err := runCLI(t, "--config", cfg, "render", path, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph G {") {
		t.Errorf("dot output = %s", data)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	path := filepath.Join(dir, "demo.json")

	if err := runCLI(t, "--config", cfg, "demo", "-o", path); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, "--config", cfg, "render", path, "-f", "gif"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestStoreLifecycle(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t, dir)
	path := filepath.Join(dir, "demo.json")

	if err := runCLI(t, "--config", cfg, "demo", "-o", path); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, "--config", cfg, "store", "push", path, "-n", "demo"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := runCLI(t, "--config", cfg, "store", "list"); err != nil {
		t.Fatalf("list: %v", err)
	}

	pulled := filepath.Join(dir, "pulled.json")
	if err := runCLI(t, "--config", cfg, "store", "pull", "demo", "-o", pulled); err != nil {
		t.Fatalf("pull: %v", err)
	}
	a, err := document.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := document.ReadFile(pulled)
	if err != nil {
		t.Fatal(err)
	}
	if diffs := document.Diff(a, b); len(diffs) > 0 {
		t.Errorf("pulled document differs: %v", diffs)
	}

	if err := runCLI(t, "--config", cfg, "store", "rm", "demo"); err != nil {
		t.Fatalf("rm: %v", err)
	}
	if err := runCLI(t, "--config", cfg, "store", "rm", "demo"); err == nil {
		t.Error("expected error deleting missing document")
	}
}
