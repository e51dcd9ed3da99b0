// Package main provides the entry point for the overlyx CLI.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// stubLyxScript writes a marker-wrapped body to the export target ($3).
const stubLyxScript = `#!/bin/sh
printf '\\documentclass{book}\n\\begin{document}\n\\include{chapter1}\nsome text\n\\end{document}\n' > "$3"
`

// failingLyxScript always exits non-zero.
const failingLyxScript = `#!/bin/sh
echo "export failed" >&2
exit 1
`

// setupSyncRepo creates a git repo with a tex directory, two documents,
// and a stub lyx wired through OVERLYX_LYX_COMMAND. The overlyx home is
// pointed at an empty temp dir so host state cannot leak in.
func setupSyncRepo(t *testing.T, lyxScript string) (repoDir, texDir string) {
	t.Helper()

	repoDir = t.TempDir()
	runGit(t, repoDir, "init")
	runGit(t, repoDir, "config", "user.email", "test@test.com")
	runGit(t, repoDir, "config", "user.name", "Test User")

	texDir = filepath.Join(repoDir, "tex")
	if err := os.MkdirAll(texDir, 0o755); err != nil {
		t.Fatalf("creating tex dir: %v", err)
	}
	for _, name := range []string{"main.lyx", "chapter1.lyx"} {
		if err := os.WriteFile(filepath.Join(texDir, name), []byte("lyx source\n"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	stub := filepath.Join(t.TempDir(), "lyx")
	if err := os.WriteFile(stub, []byte(lyxScript), 0o755); err != nil {
		t.Fatalf("writing lyx stub: %v", err)
	}
	t.Setenv("OVERLYX_LYX_COMMAND", stub)
	t.Setenv("OVERLYX_HOME", t.TempDir())

	return repoDir, texDir
}

// execCommand runs the root command with args and returns its combined output.
func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestStatusCommand_JSON(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "status", "--json")
		if err != nil {
			t.Fatalf("status failed: %v\nOutput: %s", err, out)
		}

		var result map[string]any
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}

		if result["root_document"] != "main.lyx" {
			t.Errorf("root_document = %v, want main.lyx", result["root_document"])
		}
		if result["root_present"] != true {
			t.Errorf("root_present = %v, want true", result["root_present"])
		}
		if result["tex_dir_exists"] != true {
			t.Errorf("tex_dir_exists = %v, want true", result["tex_dir_exists"])
		}
		if result["sentinel"] != false {
			t.Errorf("sentinel = %v, want false before any hook run", result["sentinel"])
		}
		docs, ok := result["documents"].([]any)
		if !ok || len(docs) != 2 {
			t.Errorf("documents = %v, want 2 entries", result["documents"])
		}
	})
}

func TestStatusCommand_Human(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "status")
		if err != nil {
			t.Fatalf("status failed: %v\nOutput: %s", err, out)
		}

		for _, want := range []string{"Repository", "Documents", "main.lyx", "Flags"} {
			if !strings.Contains(out, want) {
				t.Errorf("human output missing %q\nOutput: %s", want, out)
			}
		}
	})
}

func TestStatusCommand_NotARepo(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", dir)

	runInDir(t, dir, func() {
		_, err := execCommand(t, "status")
		if err == nil {
			t.Error("status should fail outside a git repository")
		}
	})
}

// runInDir changes to the given directory, runs testFunc, then restores the original directory.
func runInDir(t *testing.T, dir string, testFunc func()) {
	t.Helper()
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	defer func() {
		if err := os.Chdir(oldDir); err != nil {
			t.Errorf("failed to restore dir: %v", err)
		}
	}()
	testFunc()
}

// runGit runs a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}
