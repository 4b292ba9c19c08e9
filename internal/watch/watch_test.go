package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitCall(t *testing.T, calls <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestFileRerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "wallpaper.png")
	if err := os.WriteFile(target, []byte("v1"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, target, Options{Debounce: 20 * time.Millisecond}, func(context.Context) error {
			calls <- struct{}{}
			return nil
		})
	}()

	waitCall(t, calls, "initial run")

	if err := os.WriteFile(filepath.Join(dir, "other.png"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	select {
	case <-calls:
		t.Fatal("change to a sibling file triggered a run")
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(target, []byte("v2"), 0o600); err != nil {
		t.Fatal(err)
	}
	waitCall(t, calls, "run after write")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("File() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("File() did not return after cancel")
	}
}

func TestFileInitialError(t *testing.T) {
	target := filepath.Join(t.TempDir(), "wallpaper.png")
	if err := os.WriteFile(target, []byte("v1"), 0o600); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := File(context.Background(), target, Options{}, func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("File() error = %v, want %v", err, boom)
	}
}

func TestFileMissingDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing", "wallpaper.png")
	err := File(context.Background(), target, Options{}, func(context.Context) error { return nil })
	if err == nil {
		t.Error("File() expected error for a missing directory")
	}
}
