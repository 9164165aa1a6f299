package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hfocr/internal/document"
	"hfocr/pkg/types"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*Store, *clock) {
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	st := NewStore(ttl)
	st.now = c.now
	return st, c
}

func TestEnsure_CreatesAndReuses(t *testing.T) {
	st, _ := newTestStore(time.Minute)
	id, err := st.Ensure("")
	if err != nil || len(id) != 32 {
		t.Fatalf("Ensure: id=%q err=%v", id, err)
	}
	again, err := st.Ensure(id)
	if err != nil || again != id {
		t.Fatalf("expected reuse of %q, got %q err=%v", id, again, err)
	}
	other, _ := st.Ensure("unknown")
	if other == id || other == "unknown" {
		t.Fatalf("unknown id must yield a fresh session, got %q", other)
	}
	if st.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", st.Len())
	}
}

func TestDo_MutatesState(t *testing.T) {
	st, _ := newTestStore(time.Minute)
	id, _ := st.Ensure("")
	_ = st.Do(id, func(s *Session) error {
		s.Token = "hf_x"
		s.Endpoint = types.Endpoint{Name: "A"}
		s.AddDocument(&document.Document{ID: "d1"})
		s.AddDocument(&document.Document{ID: "d2"})
		return nil
	})
	var got []string
	_ = st.Do(id, func(s *Session) error {
		if s.Token != "hf_x" || s.Endpoint.Name != "A" {
			t.Fatalf("state not kept: %+v", s)
		}
		got = s.DocumentIDs()
		return nil
	})
	if len(got) != 2 || got[0] != "d1" || got[1] != "d2" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestDo_PropagatesError(t *testing.T) {
	st, _ := newTestStore(time.Minute)
	id, _ := st.Ensure("")
	boom := errors.New("boom")
	if err := st.Do(id, func(*Session) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := st.Do("missing", func(*Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReset(t *testing.T) {
	s := &Session{Token: "t", LastStatus: &types.ModelStatus{Loaded: true}}
	s.AddDocument(&document.Document{ID: "d"})
	s.Reset()
	if s.Token != "" || s.LastStatus != nil || len(s.Documents) != 0 || len(s.DocumentIDs()) != 0 {
		t.Fatalf("reset left state behind: %+v", s)
	}
}

func TestExpiry(t *testing.T) {
	st, c := newTestStore(time.Minute)
	id, _ := st.Ensure("")
	c.t = c.t.Add(30 * time.Second)
	if err := st.Do(id, func(*Session) error { return nil }); err != nil {
		t.Fatalf("session should be live: %v", err)
	}
	// access refreshed lastSeen
	c.t = c.t.Add(45 * time.Second)
	if err := st.Do(id, func(*Session) error { return nil }); err != nil {
		t.Fatalf("session should still be live: %v", err)
	}
	c.t = c.t.Add(2 * time.Minute)
	if err := st.Do(id, func(*Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("expired session should be dropped")
	}
}

func TestSweep(t *testing.T) {
	st, c := newTestStore(time.Minute)
	a, _ := st.Ensure("")
	c.t = c.t.Add(50 * time.Second)
	b, _ := st.Ensure("")
	c.t = c.t.Add(20 * time.Second)
	if n := st.Sweep(); n != 1 {
		t.Fatalf("expected 1 evicted, got %d", n)
	}
	if err := st.Do(a, func(*Session) error { return nil }); err == nil {
		t.Fatalf("a should be gone")
	}
	if err := st.Do(b, func(*Session) error { return nil }); err != nil {
		t.Fatalf("b should remain: %v", err)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	st := NewStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { st.Run(ctx, time.Millisecond); close(done) }()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConcurrentAccess(t *testing.T) {
	st := NewStore(time.Minute)
	id, _ := st.Ensure("")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Do(id, func(s *Session) error { s.Token += "x"; return nil })
		}()
	}
	wg.Wait()
	_ = st.Do(id, func(s *Session) error {
		if len(s.Token) != 50 {
			t.Fatalf("lost updates: %d", len(s.Token))
		}
		return nil
	})
}
