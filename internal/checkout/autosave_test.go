package checkout

import (
	"sync"
	"testing"
	"time"
)

type saveRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *saveRecorder) save(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

func (r *saveRecorder) saved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestAutosaver_CollapsesRapidEdits(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutosaver(30*time.Millisecond, rec.save)

	a.Set("draft 1")
	a.Set("draft 2")
	a.Set("draft 3")

	time.Sleep(100 * time.Millisecond)

	saved := rec.saved()
	if len(saved) != 1 {
		t.Fatalf("saved %d times, want 1 (edits should collapse)", len(saved))
	}
	if saved[0] != "draft 3" {
		t.Errorf("saved %q, want %q (last write wins)", saved[0], "draft 3")
	}
}

func TestAutosaver_FlushPersistsImmediately(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutosaver(time.Hour, rec.save)

	a.Set("pending draft")
	a.Flush()

	saved := rec.saved()
	if len(saved) != 1 || saved[0] != "pending draft" {
		t.Fatalf("saved = %v, want [pending draft]", saved)
	}

	// A second flush with nothing pending writes nothing.
	a.Flush()
	if saved := rec.saved(); len(saved) != 1 {
		t.Errorf("saved %d times after redundant flush, want 1", len(saved))
	}
}

func TestAutosaver_CloseFlushesAndStopsEdits(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutosaver(time.Hour, rec.save)

	a.Set("final draft")
	a.Close()

	saved := rec.saved()
	if len(saved) != 1 || saved[0] != "final draft" {
		t.Fatalf("saved = %v, want [final draft]", saved)
	}

	a.Set("after close")
	a.Flush()
	if saved := rec.saved(); len(saved) != 1 {
		t.Errorf("edit after close was persisted: %v", saved)
	}
}

func TestAutosaver_FlushWithoutEdits(t *testing.T) {
	rec := &saveRecorder{}
	a := NewAutosaver(time.Millisecond, rec.save)

	a.Flush()
	a.Close()

	if saved := rec.saved(); len(saved) != 0 {
		t.Errorf("saved = %v, want none", saved)
	}
}
