// Package main provides the entry point for the overlyx CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/overlyx/overlyx/internal/config"
	"github.com/overlyx/overlyx/internal/setup"
)

// runCoreChecks verifies the repository, export tool and tex directory.
func runCoreChecks() []checkResult {
	var checks []checkResult

	p, err := repoPipeline()
	if err != nil {
		checks = append(checks, check("config", checkFail, err.Error(), "fix "+config.FileName))
		return checks
	}
	checks = append(checks, check("config", checkPass, "configuration loaded", ""))

	if p.Exporter().Available() {
		checks = append(checks, check("lyx", checkPass, p.Exporter().Command+" found", ""))
	} else {
		checks = append(checks, check("lyx", checkFail,
			p.Exporter().Command+" not found in PATH",
			"install LyX or set lyx_command in "+config.FileName))
	}

	if info, statErr := os.Stat(p.Dir()); statErr == nil && info.IsDir() {
		docs, docsErr := p.Documents()
		switch {
		case docsErr != nil:
			checks = append(checks, check("tex directory", checkFail, docsErr.Error(), ""))
		case len(docs) == 0:
			checks = append(checks, check("tex directory", checkWarn,
				p.Dir()+" holds no "+p.Config().AuthoringExt+" documents", ""))
		default:
			checks = append(checks, check("tex directory", checkPass,
				fmt.Sprintf("%s (%d documents)", p.Dir(), len(docs)), ""))
		}
	} else {
		checks = append(checks, check("tex directory", checkFail,
			p.Dir()+" does not exist",
			"create it or set tex_dir in "+config.FileName))
	}

	rootPath := filepath.Join(p.Dir(), p.Config().RootDocument)
	if statOK(rootPath) {
		checks = append(checks, check("root document", checkPass, p.Config().RootDocument+" present", ""))
	} else {
		checks = append(checks, check("root document", checkWarn,
			p.Config().RootDocument+" not found",
			"set root_document in "+config.FileName+" if it has another name"))
	}

	return checks
}

// runHookChecks verifies the overlyx git hooks.
func runHookChecks() []checkResult {
	hooksDir, err := setup.HooksDir()
	if err != nil {
		return []checkResult{check("hooks directory", checkFail, err.Error(), "")}
	}

	var checks []checkResult
	for _, name := range setup.HookNames {
		status := setup.CheckHookStatus(filepath.Join(hooksDir, name))
		switch {
		case status.Installed && status.Chained:
			checks = append(checks, check(name, checkPass, "installed (chained)", ""))
		case status.Installed:
			checks = append(checks, check(name, checkPass, "installed", ""))
		default:
			checks = append(checks, check(name, checkWarn, "not installed", "run 'overlyx hooks install'"))
		}
	}
	return checks
}

// runHomeChecks verifies the overlyx home directory and delegate script.
func runHomeChecks() []checkResult {
	var checks []checkResult

	home := config.Home()
	if !statOK(home) {
		checks = append(checks, check("home", checkWarn, home+" does not exist",
			"create it to use the post-merge delegation"))
		return checks
	}
	checks = append(checks, check("home", checkPass, home, ""))

	script := config.PostMergeScriptPath()
	if info, err := os.Stat(script); err != nil {
		checks = append(checks, check("post-merge script", checkWarn, script+" not found",
			"the post-merge hook will warn until the script exists"))
	} else if info.Mode()&0o111 == 0 {
		checks = append(checks, check("post-merge script", checkFail, script+" is not executable",
			"chmod +x "+script))
	} else {
		checks = append(checks, check("post-merge script", checkPass, script, ""))
	}

	if config.HooksDisabled() {
		checks = append(checks, check("disable flag", checkWarn,
			config.DisableHooksPath()+" is present; post-merge processing is off",
			"remove the file to re-enable"))
	} else {
		checks = append(checks, check("disable flag", checkPass, "absent", ""))
	}

	return checks
}
