package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatchesDirPattern(t *testing.T) {
	tests := []struct {
		line    string
		matches bool
	}{
		{".eqt", true},
		{".eqt/", true},
		{".eqt/*", true},
		{".eqt/**", true},
		{".eqt/**/*", true},
		{"/.eqt", true},
		{"/.eqt/", true},

		{"", false},
		{".eqt2", false},
		{"eqt/", false},
		{".beads/", false},
		{"*.eqt", false},
		{".eqt-backup", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := matchesDirPattern(tt.line, ".eqt"); got != tt.matches {
				t.Errorf("matchesDirPattern(%q) = %v, want %v", tt.line, got, tt.matches)
			}
		})
	}
}

func TestEnsureIgnored(t *testing.T) {
	tests := []struct {
		name    string
		initial *string
		want    string
		changed bool
	}{
		{
			name:    "creates file",
			want:    "# eqt view state and snapshots\n.eqt/\n",
			changed: true,
		},
		{
			name:    "appends with separator",
			initial: strPtr("node_modules/"),
			want:    "node_modules/\n\n# eqt view state and snapshots\n.eqt/\n",
			changed: true,
		},
		{
			name:    "already covered",
			initial: strPtr("bin/\n/.eqt/**\n"),
			want:    "bin/\n/.eqt/**\n",
		},
		{
			name:    "commented pattern does not count",
			initial: strPtr("# .eqt/\n"),
			want:    "# .eqt/\n\n# eqt view state and snapshots\n.eqt/\n",
			changed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(root, ".gitignore")
			if tt.initial != nil {
				if err := os.WriteFile(path, []byte(*tt.initial), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			changed, err := EnsureIgnored(root, DirName)
			if err != nil {
				t.Fatalf("EnsureIgnored() error = %v", err)
			}
			if changed != tt.changed {
				t.Errorf("EnsureIgnored() changed = %v, want %v", changed, tt.changed)
			}
			got, _ := os.ReadFile(path)
			if string(got) != tt.want {
				t.Errorf(".gitignore = %q, want %q", got, tt.want)
			}

			// second call is a no-op
			again, err := EnsureIgnored(root, DirName)
			if err != nil || again {
				t.Errorf("second EnsureIgnored() = %v, %v; want false, nil", again, err)
			}
		})
	}
}

func TestEnsureIgnoredSkipsNonGitAndOutsideDirs(t *testing.T) {
	root := t.TempDir()
	if changed, err := EnsureIgnored(root, DirName); err != nil || changed {
		t.Errorf("non-git root: got %v, %v", changed, err)
	}
	if _, err := os.Stat(filepath.Join(root, ".gitignore")); !os.IsNotExist(err) {
		t.Error(".gitignore should not be created outside a git work tree")
	}

	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{"", "../elsewhere", "/abs/state"} {
		if changed, err := EnsureIgnored(root, dir); err != nil || changed {
			t.Errorf("EnsureIgnored(%q) = %v, %v", dir, changed, err)
		}
	}
}

func strPtr(s string) *string { return &s }
