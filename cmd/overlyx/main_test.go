// Package main provides the entry point for the overlyx CLI.
package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuildVersion(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer func() { version, commit, date = origVersion, origCommit, origDate }()

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{
			name:    "dev build",
			version: "dev",
			commit:  "none",
			date:    "unknown",
			want:    "dev",
		},
		{
			name:    "release build",
			version: "1.2.0",
			commit:  "abcdef1234567890",
			date:    "2024-06-01",
			want:    "1.2.0 (abcdef1, 2024-06-01)",
		},
		{
			name:    "short commit kept as is",
			version: "1.2.0",
			commit:  "abc",
			date:    "2024-06-01",
			want:    "1.2.0 (abc, 2024-06-01)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, commit, date = tt.version, tt.commit, tt.date
			if got := buildVersion(); got != tt.want {
				t.Errorf("buildVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execCommand(t)
	if err != nil {
		t.Fatalf("bare invocation failed: %v\nOutput: %s", err, out)
	}
	for _, want := range []string{"Core Commands:", "Admin Commands:", "export", "watch", "hooks"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q", want)
		}
	}
	if strings.Contains(out, "hook run") {
		t.Error("hidden hook command listed in help")
	}
}

func TestRootCommand_JSONWithoutSubcommand(t *testing.T) {
	out, err := execCommand(t, "--json")
	if err == nil {
		t.Fatal("expected an error for --json without a subcommand")
	}

	var result map[string]any
	if jsonErr := json.Unmarshal([]byte(out), &result); jsonErr != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", jsonErr, out)
	}
	if result["error"] == nil {
		t.Errorf("JSON error output missing error field: %v", result)
	}
}

func TestJSONHookKey(t *testing.T) {
	if got := jsonHookKey("pre-commit"); got != "pre_commit" {
		t.Errorf("jsonHookKey(pre-commit) = %q, want pre_commit", got)
	}
	if got := jsonHookKey("post-merge"); got != "post_merge" {
		t.Errorf("jsonHookKey(post-merge) = %q, want post_merge", got)
	}
}
