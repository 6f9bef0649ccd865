package memory

import (
	"sync"
	"testing"

	"ai-travelmate-be/pkg/store"
)

func TestSaveGetDeleteRoundTrip(t *testing.T) {
	repo := NewContextRepository()

	ctx := store.NewContext()
	ctx.SetTopic("beach")
	repo.Save("session-1", ctx)

	got, ok := repo.Get("session-1")
	if !ok {
		t.Fatal("Get after Save returned no context")
	}
	if got.CurrentTopic != "beach" {
		t.Errorf("CurrentTopic = %q, want %q", got.CurrentTopic, "beach")
	}

	repo.Delete("session-1")
	if _, ok := repo.Get("session-1"); ok {
		t.Error("Get after Delete still found the context")
	}
}

func TestDeleteReleasesSessionLockEntry(t *testing.T) {
	repo := NewContextRepository()

	repo.Acquire("session-1")
	repo.Release("session-1")
	repo.Acquire("session-2")
	repo.Release("session-2")

	repo.Delete("session-1")

	repo.mu.Lock()
	_, stale := repo.locks["session-1"]
	_, kept := repo.locks["session-2"]
	repo.mu.Unlock()

	if stale {
		t.Error("deleted session still holds a lock entry")
	}
	if !kept {
		t.Error("unrelated session's lock entry was dropped")
	}
}

func TestAcquireSerializesSameSession(t *testing.T) {
	repo := NewContextRepository()

	const turns = 50
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Acquire("session-1")
			counter++
			repo.Release("session-1")
		}()
	}
	wg.Wait()

	if counter != turns {
		t.Errorf("counter = %d, want %d", counter, turns)
	}
}
