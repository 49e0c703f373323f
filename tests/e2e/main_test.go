package main_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildEqtBinary compiles cmd/eqt into a temp dir once per test.
func buildEqtBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e build in short mode")
	}

	name := "eqt"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)

	_, file, _, _ := runtime.Caller(0)
	repoRoot := filepath.Join(filepath.Dir(file), "..", "..")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/eqt")
	cmd.Dir = repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\n%s", err, out)
	}
	return binPath
}

func run(t *testing.T, bin, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "EQT_DIR=")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("eqt %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

func TestEndToEndBuildAndRun(t *testing.T) {
	binPath := buildEqtBinary(t)
	envDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(envDir, ".eqt"), 0755); err != nil {
		t.Fatal(err)
	}
	treeYAML := `version: 1
nodes:
  - id: eng
    label: Engineering
    children:
      - id: api
        label: API
      - id: web
        label: Web
  - id: ops
    label: Operations
`
	if err := os.WriteFile(filepath.Join(envDir, "tree.yaml"), []byte(treeYAML), 0644); err != nil {
		t.Fatal(err)
	}

	if out := run(t, binPath, envDir, "version"); !strings.Contains(out, "eqt ") {
		t.Errorf("version output = %q", out)
	}

	run(t, binPath, envDir, "move", "web", "ops")
	run(t, binPath, envDir, "add", "--parent", "eng", "--id", "db", "Database")

	out := run(t, binPath, envDir, "print", "--width", "0")
	for _, want := range []string{"Engineering  (eng)", "└── Web  (web)", "Database  (db)", "5 nodes, 3 leaves"} {
		if !strings.Contains(out, want) {
			t.Errorf("print output missing %q:\n%s", want, out)
		}
	}

	svgPath := filepath.Join(envDir, "tree.svg")
	run(t, binPath, envDir, "export", "-o", svgPath)
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("export did not produce an svg document")
	}
}

func TestEndToEndRejectsCycle(t *testing.T) {
	binPath := buildEqtBinary(t)
	envDir := t.TempDir()

	treeJSON := `{"version":1,"nodes":[{"id":"a","label":"A","children":[{"id":"b","label":"B"}]}]}`
	if err := os.WriteFile(filepath.Join(envDir, "t.json"), []byte(treeJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(binPath, "--file", "t.json", "move", "a", "b")
	cmd.Dir = envDir
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected move into own subtree to fail:\n%s", out)
	}
	if !strings.Contains(string(out), "subtree") {
		t.Errorf("error output = %s", out)
	}
}
