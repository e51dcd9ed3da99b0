// Package lyx invokes the external LyX binary to export authoring documents
// to LaTeX. LyX is treated as an opaque collaborator: this package only
// builds the command line, runs it, and translates failures.
package lyx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/overlyx/overlyx/internal/output"
)

// Exporter runs the LyX export command.
type Exporter struct {
	// Command is the lyx binary to invoke ("lyx" by default).
	Command string
}

// NewExporter creates an Exporter for the given binary name or path.
func NewExporter(command string) *Exporter {
	if command == "" {
		command = "lyx"
	}
	return &Exporter{Command: command}
}

// Available reports whether the export binary can be found.
func (e *Exporter) Available() bool {
	_, err := exec.LookPath(e.Command)
	return err == nil
}

// Export regenerates texPath from lyxPath by running
//
//	lyx --export-to latex <texPath> -f <lyxPath>
//
// The call blocks until the
// subprocess exits; there is no timeout beyond ctx. A non-zero exit or a
// missing binary becomes an *output.ExitError carrying stderr.
func (e *Exporter) Export(ctx context.Context, texPath, lyxPath string) error {
	cmd := exec.CommandContext(ctx, e.Command, "--export-to", "latex", texPath, "-f", lyxPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return output.NewSystemError(e.Command + " not found: ensure LyX is installed and in PATH")
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return output.NewSystemErrorWithCause("lyx export failed for "+lyxPath+": "+errMsg, err)
	}

	return nil
}
