package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DisableHooksFile is the flag file under Home() whose presence suppresses
// the post-merge delegation step.
const DisableHooksFile = ".disable_hooks"

// PostMergeScript is the delegated post-merge program under Home().
const PostMergeScript = "post-merge"

// Dir returns the overlyx configuration directory.
//
// Resolution:
//   - $OVERLYX_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/overlyx if set (respects XDG on any platform)
//   - %AppData%/overlyx on Windows
//   - ~/.config/overlyx on macOS and Linux
func Dir() string {
	if dir := os.Getenv("OVERLYX_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "overlyx")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "overlyx")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "overlyx")
}

// Home returns the overlyx base directory holding the disable-flag file and
// the delegated post-merge script.
//
// Resolution:
//   - $OVERLYX_HOME if set (explicit override)
//   - ~/overlyx otherwise
func Home() string {
	if dir := os.Getenv("OVERLYX_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "overlyx")
}

// DisableHooksPath returns the full path of the disable-flag file.
func DisableHooksPath() string {
	return filepath.Join(Home(), DisableHooksFile)
}

// PostMergeScriptPath returns the full path of the delegated post-merge program.
func PostMergeScriptPath() string {
	return filepath.Join(Home(), PostMergeScript)
}

// HooksDisabled reports whether the disable-flag file exists.
func HooksDisabled() bool {
	_, err := os.Stat(DisableHooksPath())
	return err == nil
}
