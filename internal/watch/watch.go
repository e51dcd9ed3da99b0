// Package watch runs the long-lived directory watcher that keeps markup
// files in sync while an author edits. It is deliberately minimal: one
// goroutine consumes filesystem events and runs the handler for each
// changed authoring document, one at a time. Crash or cancellation simply
// stops synchronization; an external supervisor is expected to restart
// the process.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/overlyx/overlyx/internal/output"
)

// Handler is called for each changed authoring document.
type Handler func(ctx context.Context, path string) error

// Watcher watches one directory for changes to authoring documents.
type Watcher struct {
	dir     string
	match   func(name string) bool
	handler Handler

	// OnError receives handler and watcher errors. The loop continues
	// after handler errors. Nil means errors are dropped.
	OnError func(err error)
}

// New creates a Watcher over dir. match selects the file names to react
// to (typically by authoring extension); handler runs the export+filter.
func New(dir string, match func(name string) bool, handler Handler) *Watcher {
	return &Watcher{dir: dir, match: match, handler: handler}
}

// Run blocks consuming events until ctx is cancelled or the underlying
// watcher closes. Each relevant event triggers one handler call; events
// are processed strictly in arrival order.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return output.NewSystemErrorWithCause("failed to create file watcher", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return output.NewSystemErrorWithCause("failed to watch "+w.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if err := w.handler(ctx, event.Name); err != nil {
				w.reportError(err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.reportError(err)
		}
	}
}

// relevant reports whether an event should trigger a sync: a content
// change to a file whose name matches the authoring extension. Create
// covers editors that save via rename-into-place. Remove, rename-away
// and chmod events are ignored; there is nothing to export then.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return false
	}
	return w.match(filepath.Base(event.Name))
}

func (w *Watcher) reportError(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
