package store

import (
	"context"
	"testing"
	"time"
)

func TestWatch_ReportsStoreWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := Store{Dir: t.TempDir()}
	ch, err := s.Watch(ctx)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}

	if err := s.Set(ctx, FilesKey, `[{"name":"a","content":"1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a change notification")
	}

	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("expected channel to close after cancel")
		}
	}
}

func TestWatch_QuietAfterReload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := Store{Dir: t.TempDir()}
	ch, err := s.Watch(ctx)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}

	if err := s.Set(ctx, FilesKey, `[{"name":"a","content":"1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a change notification")
	}

	// Reloading opens the database again; that alone is not a change.
	for i := 0; i < 3; i++ {
		if _, err := s.ReadFiles(ctx); err != nil {
			t.Fatalf("ReadFiles: %v", err)
		}
		select {
		case <-ch:
			t.Fatalf("notification after reload %d with no writes", i)
		case <-time.After(400 * time.Millisecond):
		}
	}

	if err := s.Set(ctx, FilesKey, `[{"name":"b","content":"2"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a notification for the second write")
	}
}
