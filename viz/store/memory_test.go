package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

type fakeStep struct {
	Title string
}

func TestMemStoreConvertedRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[fakeStep]()

	steps := []fakeStep{{Title: "init"}, {Title: "swap"}}
	if err := s.SaveConverted(ctx, "sess-01", steps); err != nil {
		t.Fatalf("SaveConverted: %v", err)
	}

	got, err := s.LoadConverted(ctx, "sess-01")
	if err != nil {
		t.Fatalf("LoadConverted: %v", err)
	}
	if len(got) != 2 || got[0].Title != "init" || got[1].Title != "swap" {
		t.Errorf("loaded steps mismatch: %+v", got)
	}
}

func TestMemStoreMissingSession(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[fakeStep]()

	if _, err := s.LoadConverted(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadConverted error = %v, want ErrNotFound", err)
	}
	if _, err := s.LoadResolved(ctx, "nope", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadResolved error = %v, want ErrNotFound", err)
	}
}

func TestMemStoreResolvedPerStep(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[fakeStep]()

	if err := s.SaveResolved(ctx, "sess-01", 0, map[string]any{"array": []any{1, 2}}); err != nil {
		t.Fatalf("SaveResolved: %v", err)
	}
	if err := s.SaveResolved(ctx, "sess-01", 1, map[string]any{"array": []any{2, 1}}); err != nil {
		t.Fatalf("SaveResolved: %v", err)
	}

	data, err := s.LoadResolved(ctx, "sess-01", 1)
	if err != nil {
		t.Fatalf("LoadResolved: %v", err)
	}
	arr, ok := data["array"].([]any)
	if !ok || len(arr) != 2 || arr[0] != 2 {
		t.Errorf("resolved data mismatch: %v", data)
	}

	// Other steps stay untouched.
	if _, err := s.LoadResolved(ctx, "sess-01", 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("step 2 should be absent, got err %v", err)
	}
}

func TestMemStoreSaveConvertedReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[fakeStep]()

	_ = s.SaveConverted(ctx, "sess-01", []fakeStep{{Title: "old"}})
	_ = s.SaveConverted(ctx, "sess-01", []fakeStep{{Title: "new"}, {Title: "newer"}})

	got, err := s.LoadConverted(ctx, "sess-01")
	if err != nil {
		t.Fatalf("LoadConverted: %v", err)
	}
	if len(got) != 2 || got[0].Title != "new" {
		t.Errorf("replacement not applied: %+v", got)
	}
}

func TestMemStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[fakeStep]()

	_ = s.SaveConverted(ctx, "a", []fakeStep{{Title: "x"}})
	_ = s.SaveResolved(ctx, "a", 0, map[string]any{"k": "v"})
	_ = s.SaveConverted(ctx, "b", []fakeStep{{Title: "y"}})

	if err := s.Clear(ctx, "a"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := s.LoadConverted(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Error("converted cache for a survived Clear")
	}
	if _, err := s.LoadResolved(ctx, "a", 0); !errors.Is(err, ErrNotFound) {
		t.Error("resolved cache for a survived Clear")
	}
	if _, err := s.LoadConverted(ctx, "b"); err != nil {
		t.Errorf("Clear touched session b: %v", err)
	}
}

func TestMemStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore[fakeStep]()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := fmt.Sprintf("s%d", n)
			for j := 0; j < 50; j++ {
				_ = s.SaveResolved(ctx, session, j, map[string]any{"i": j})
				_, _ = s.LoadResolved(ctx, session, j)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		if _, err := s.LoadResolved(ctx, fmt.Sprintf("s%d", i), 49); err != nil {
			t.Errorf("session s%d lost writes: %v", i, err)
		}
	}
}
