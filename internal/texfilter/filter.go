// Package texfilter strips environment decoration from an exported root
// document, leaving only the body lines between \begin{document} and
// \end{document} with inclusion directives removed.
//
// Markers are matched textually, not by parsing LaTeX. Duplicated markers
// re-enter or re-exit the region (last one wins); an input without markers
// filters to empty output. Both behaviors are preserved deliberately.
package texfilter

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/overlyx/overlyx/internal/output"
)

// Marker lines delimiting the document body, matched by substring.
const (
	BeginMarker = `\begin{document}`
	EndMarker   = `\end{document}`
)

// IncludePrefix marks inclusion directives dropped from the body.
const IncludePrefix = `\include`

// Filter copies the document body from src to dst.
// Returns the number of lines emitted.
func Filter(dst io.Writer, src io.Reader) (int, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	writer := bufio.NewWriter(dst)

	emitted := 0
	inBody := false
	for scanner.Scan() {
		line := scanner.Text()

		// Marker lines toggle the region and are never emitted.
		if strings.Contains(line, BeginMarker) {
			inBody = true
			continue
		}
		if strings.Contains(line, EndMarker) {
			inBody = false
			continue
		}
		if !inBody {
			continue
		}
		if strings.HasPrefix(line, IncludePrefix) {
			continue
		}

		if _, err := writer.WriteString(line); err != nil {
			return emitted, err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return emitted, err
		}
		emitted++
	}
	if err := scanner.Err(); err != nil {
		return emitted, err
	}
	return emitted, writer.Flush()
}

// FilterString filters a string and returns the body.
func FilterString(s string) (string, int) {
	var sb strings.Builder
	// strings never fail to read or write
	n, _ := Filter(&sb, strings.NewReader(s))
	return sb.String(), n
}

// FilterFile filters path in place: the body is written to a temporary
// sibling which then replaces the original via rename, so the file is
// swapped atomically (per file, not across files).
// Returns the number of lines emitted.
func FilterFile(path string) (int, error) {
	src, err := os.Open(path)
	if err != nil {
		return 0, output.NewSystemErrorWithCause("failed to open "+path, err)
	}

	tmpPath := path + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		src.Close()
		return 0, output.NewSystemErrorWithCause("failed to create "+tmpPath, err)
	}

	emitted, filterErr := Filter(tmp, src)
	src.Close()
	if closeErr := tmp.Close(); filterErr == nil {
		filterErr = closeErr
	}
	if filterErr != nil {
		os.Remove(tmpPath)
		return emitted, output.NewSystemErrorWithCause("failed to filter "+path, filterErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return emitted, output.NewSystemErrorWithCause("failed to replace "+path, err)
	}
	return emitted, nil
}
