// Package main provides the entry point for the overlyx CLI.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHooksInstallAndList(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "hooks", "install", "--json")
		if err != nil {
			t.Fatalf("hooks install failed: %v\nOutput: %s", err, out)
		}

		var result map[string]any
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}
		for _, key := range []string{"pre_commit", "post_merge"} {
			hook, ok := result[key].(map[string]any)
			if !ok || hook["installed"] != true {
				t.Errorf("%s = %v, want installed", key, result[key])
			}
		}

		for _, name := range []string{"pre-commit", "post-merge"} {
			body, readErr := os.ReadFile(filepath.Join(repoDir, ".git", "hooks", name))
			if readErr != nil {
				t.Fatalf("hook %s not written: %v", name, readErr)
			}
			if !strings.Contains(string(body), "overlyx hook run "+name) {
				t.Errorf("hook %s does not call overlyx:\n%s", name, body)
			}
		}

		out, err = execCommand(t, "hooks", "list", "--json")
		if err != nil {
			t.Fatalf("hooks list failed: %v\nOutput: %s", err, out)
		}
		result = nil
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}
		preCommit, ok := result["pre_commit"].(map[string]any)
		if !ok || preCommit["installed"] != true {
			t.Errorf("pre_commit = %v, want installed", result["pre_commit"])
		}
	})
}

func TestHooksInstall_ChainPreservesExisting(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)
	hooksDir := filepath.Join(repoDir, ".git", "hooks")
	existing := "#!/bin/sh\necho from-existing-hook\n"
	if err := os.WriteFile(filepath.Join(hooksDir, "pre-commit"), []byte(existing), 0o755); err != nil {
		t.Fatalf("writing existing hook: %v", err)
	}

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "hooks", "install", "--chain", "--json")
		if err != nil {
			t.Fatalf("hooks install --chain failed: %v\nOutput: %s", err, out)
		}

		backup, readErr := os.ReadFile(filepath.Join(hooksDir, "pre-commit.backup"))
		if readErr != nil {
			t.Fatalf("backup not written: %v", readErr)
		}
		if string(backup) != existing {
			t.Errorf("backup = %q, want original hook body", backup)
		}

		hook, readErr := os.ReadFile(filepath.Join(hooksDir, "pre-commit"))
		if readErr != nil {
			t.Fatalf("hook not written: %v", readErr)
		}
		if !strings.Contains(string(hook), "pre-commit.backup") {
			t.Errorf("chained hook does not invoke the backup:\n%s", hook)
		}
	})
}

func TestHooksUninstall_RestoresBackup(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)
	hooksDir := filepath.Join(repoDir, ".git", "hooks")
	existing := "#!/bin/sh\necho from-existing-hook\n"
	if err := os.WriteFile(filepath.Join(hooksDir, "pre-commit"), []byte(existing), 0o755); err != nil {
		t.Fatalf("writing existing hook: %v", err)
	}

	runInDir(t, repoDir, func() {
		if out, err := execCommand(t, "hooks", "install", "--chain"); err != nil {
			t.Fatalf("hooks install failed: %v\nOutput: %s", err, out)
		}

		out, err := execCommand(t, "hooks", "uninstall", "--json")
		if err != nil {
			t.Fatalf("hooks uninstall failed: %v\nOutput: %s", err, out)
		}

		var result map[string]any
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}
		preCommit, ok := result["pre_commit"].(map[string]any)
		if !ok || preCommit["restored"] != true {
			t.Errorf("pre_commit = %v, want restored", result["pre_commit"])
		}

		body, readErr := os.ReadFile(filepath.Join(hooksDir, "pre-commit"))
		if readErr != nil {
			t.Fatalf("restored hook missing: %v", readErr)
		}
		if string(body) != existing {
			t.Errorf("restored hook = %q, want original body", body)
		}
		if _, statErr := os.Stat(filepath.Join(hooksDir, "post-merge")); statErr == nil {
			t.Error("post-merge hook still present after uninstall")
		}
	})
}

func TestHooksInstall_DryRunWritesNothing(t *testing.T) {
	repoDir, _ := setupSyncRepo(t, stubLyxScript)

	runInDir(t, repoDir, func() {
		out, err := execCommand(t, "hooks", "install", "--dry-run", "--json")
		if err != nil {
			t.Fatalf("hooks install --dry-run failed: %v\nOutput: %s", err, out)
		}

		var result map[string]any
		if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
		}
		if result["status"] != "dry_run" {
			t.Errorf("status = %v, want dry_run", result["status"])
		}
		if _, statErr := os.Stat(filepath.Join(repoDir, ".git", "hooks", "pre-commit")); statErr == nil {
			t.Error("dry run wrote a hook file")
		}
	})
}

func TestHooksList_NotARepo(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	runInDir(t, dir, func() {
		if _, err := execCommand(t, "hooks", "list"); err == nil {
			t.Fatal("expected an error outside a git repository")
		}
	})
}
