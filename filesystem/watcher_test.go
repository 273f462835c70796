package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "testscribe-watcher-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	w, err := NewWatcher(tmpDir, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	// Wait for watcher to start up
	time.Sleep(100 * time.Millisecond)

	reportFile := filepath.Join(tmpDir, "Login - 1 - PASS.xlsx")
	if err := os.WriteFile(reportFile, []byte("xlsx"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-w.Events:
		if event != reportFile {
			t.Errorf("expected event for %s, got %s", reportFile, event)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for report creation event")
	}

	// Non-report files are ignored
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-w.Events:
		t.Errorf("unexpected event for ignored file: %s", event)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_NextAfterClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	w.Close()
	w.Close()

	if _, ok := w.Next(); ok {
		t.Error("expected Next to report a closed watcher")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "gone"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
