package assistant

import (
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	m := NewSessionManager()

	s := m.Start("c1")
	if s.ID == "" {
		t.Fatal("session must get an id")
	}

	got, ok := m.Get(s.ID)
	if !ok || got.ClientID != "c1" {
		t.Fatalf("expected to find session for c1, got %v", got)
	}

	if !m.Append(s.ID, "user", "hello") {
		t.Error("append to live session should succeed")
	}
	if m.Append("missing", "user", "hello") {
		t.Error("append to unknown session should fail")
	}

	got, _ = m.Get(s.ID)
	if len(got.Messages) != 1 || got.Messages[0].Content != "hello" {
		t.Errorf("unexpected transcript: %+v", got.Messages)
	}
}

func TestSessionExpiry(t *testing.T) {
	m := NewSessionManager()

	fresh := m.Start("c1")
	stale := m.Start("c2")

	// Backdate the stale session past the idle window.
	m.mu.Lock()
	m.sessions[stale.ID].UpdatedAt = time.Now().Add(-idleTimeout - time.Minute)
	m.mu.Unlock()

	m.expireIdle(time.Now())

	if _, ok := m.Get(stale.ID); ok {
		t.Error("stale session should have been dropped")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Error("fresh session should survive cleanup")
	}
	if m.ActiveCount() != 1 {
		t.Errorf("expected 1 live session, got %d", m.ActiveCount())
	}
}
