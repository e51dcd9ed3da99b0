package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/overlyx/overlyx/internal/output"
)

// RunLog writes timestamped lines to a per-run log file, optionally
// mirrored to a second writer (console). One log per hook name lives in
// the tex directory, truncated on each run. A nil *RunLog discards
// everything, so callers can log unconditionally.
type RunLog struct {
	file   *os.File
	mirror io.Writer
}

// OpenRunLog creates (truncating) the log file at path.
// Lines are mirrored to mirror when it is non-nil.
func OpenRunLog(path string, mirror io.Writer) (*RunLog, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create log file "+path, err)
	}
	return &RunLog{file: file, mirror: mirror}, nil
}

// Printf writes a timestamped line to the log.
func (l *RunLog) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	line := fmt.Sprintf("%s - %s\n", time.Now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
	_, _ = l.file.WriteString(line)
	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, line)
	}
}

// Close closes the underlying file.
func (l *RunLog) Close() error {
	if l == nil {
		return nil
	}
	return l.file.Close()
}
