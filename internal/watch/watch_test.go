package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// collect runs a watcher over dir and returns a function that waits for
// the first handled path.
func collect(t *testing.T, dir string) (wait func() string, stop func()) {
	t.Helper()

	var mu sync.Mutex
	var handled []string
	seen := make(chan struct{}, 16)

	w := New(dir,
		func(name string) bool { return strings.HasSuffix(name, ".lyx") },
		func(_ context.Context, path string) error {
			mu.Lock()
			handled = append(handled, path)
			mu.Unlock()
			seen <- struct{}{}
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	wait = func() string {
		select {
		case <-seen:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for watch event")
		}
		mu.Lock()
		defer mu.Unlock()
		return handled[len(handled)-1]
	}
	stop = func() {
		cancel()
		<-done
	}
	return wait, stop
}

func TestRun_HandlesDocumentWrites(t *testing.T) {
	dir := t.TempDir()
	wait, stop := collect(t, dir)
	defer stop()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "main.lyx")
	if err := os.WriteFile(path, []byte("edited\n"), 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}

	if got := wait(); got != path {
		t.Errorf("handled path = %q, want %q", got, path)
	}
}

func TestRun_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	wait, stop := collect(t, dir)
	defer stop()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	docPath := filepath.Join(dir, "chapter1.lyx")
	if err := os.WriteFile(docPath, []byte("y"), 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}

	// The first handled path skips the .txt file entirely.
	if got := wait(); got != docPath {
		t.Errorf("handled path = %q, want %q", got, docPath)
	}
}

func TestRun_CancelStopsLoop(t *testing.T) {
	dir := t.TempDir()

	w := New(dir,
		func(string) bool { return true },
		func(context.Context, string) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent"),
		func(string) bool { return true },
		func(context.Context, string) error { return nil })

	if err := w.Run(context.Background()); err == nil {
		t.Error("Run() should fail for a missing directory")
	}
}

func TestRun_HandlerErrorsDoNotStopLoop(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var reported []error
	calls := make(chan string, 16)

	w := New(dir,
		func(name string) bool { return strings.HasSuffix(name, ".lyx") },
		func(_ context.Context, path string) error {
			calls <- path
			return errors.New("export failed")
		})
	w.OnError = func(err error) {
		mu.Lock()
		reported = append(reported, err)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)

	for _, name := range []string{"a.lyx", "b.lyx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for handler call for %s", name)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(reported) < 2 {
		t.Errorf("OnError called %d times, want at least 2", len(reported))
	}
}
