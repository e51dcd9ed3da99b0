// Package main provides the entry point for the overlyx CLI.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/overlyx/overlyx/internal/config"
)

func TestInitCommand(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "init", "--json")
		if err != nil {
			t.Fatalf("init failed: %v\nOutput: %s", err, out)
		}

		var result map[string]any
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}
		if result["config_written"] != true {
			t.Errorf("config_written = %v, want true", result["config_written"])
		}
		if result["hooks"] != true {
			t.Errorf("hooks = %v, want true", result["hooks"])
		}
		if result["tex_dir_exists"] != true {
			t.Errorf("tex_dir_exists = %v, want true", result["tex_dir_exists"])
		}

		if _, statErr := os.Stat(filepath.Join(repoDir, config.FileName)); statErr != nil {
			t.Errorf("config file not written: %v", statErr)
		}
		for _, name := range []string{"pre-commit", "post-merge"} {
			if _, statErr := os.Stat(filepath.Join(repoDir, ".git", "hooks", name)); statErr != nil {
				t.Errorf("hook %s not installed: %v", name, statErr)
			}
		}
	})
}

func TestInitCommand_ExistingConfigKept(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)
	custom := []byte("root_document: thesis.lyx\n")
	if err := os.WriteFile(filepath.Join(repoDir, config.FileName), custom, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "init", "--json")
		if err != nil {
			t.Fatalf("init failed: %v\nOutput: %s", err, out)
		}

		var result map[string]any
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}
		if result["config_written"] != false {
			t.Errorf("config_written = %v, want false", result["config_written"])
		}

		body, readErr := os.ReadFile(filepath.Join(repoDir, config.FileName))
		if readErr != nil {
			t.Fatalf("reading config: %v", readErr)
		}
		if string(body) != string(custom) {
			t.Errorf("existing config was overwritten:\n%s", body)
		}
	})
}

func TestInitCommand_ForceOverwritesConfig(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)
	custom := []byte("root_document: thesis.lyx\n")
	if err := os.WriteFile(filepath.Join(repoDir, config.FileName), custom, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "init", "--force", "--json")
		if err != nil {
			t.Fatalf("init --force failed: %v\nOutput: %s", err, out)
		}

		var result map[string]any
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}
		if result["config_written"] != true {
			t.Errorf("config_written = %v, want true", result["config_written"])
		}

		body, readErr := os.ReadFile(filepath.Join(repoDir, config.FileName))
		if readErr != nil {
			t.Fatalf("reading config: %v", readErr)
		}
		if string(body) == string(custom) {
			t.Error("config not overwritten despite --force")
		}
	})
}

func TestInitCommand_NoHooks(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "init", "--no-hooks", "--json")
		if err != nil {
			t.Fatalf("init --no-hooks failed: %v\nOutput: %s", err, out)
		}

		var result map[string]any
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}
		if result["hooks"] != false {
			t.Errorf("hooks = %v, want false", result["hooks"])
		}
		if _, statErr := os.Stat(filepath.Join(repoDir, ".git", "hooks", "pre-commit")); statErr == nil {
			t.Error("pre-commit hook installed despite --no-hooks")
		}
	})
}
