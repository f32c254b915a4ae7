package router

import "testing"

func TestMemoryHistoryEmpty(t *testing.T) {
	h := NewMemoryHistory()

	if _, ok := h.Current(); ok {
		t.Error("Current reported an entry on an empty history")
	}
	if _, ok := h.Back(); ok {
		t.Error("Back reported an entry on an empty history")
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward reported an entry on an empty history")
	}
}

func TestMemoryHistoryPushBackForward(t *testing.T) {
	h := NewMemoryHistory()
	h.Push("/")
	h.Push("/login")
	h.Push("/dashboard")

	if cur, _ := h.Current(); cur != "/dashboard" {
		t.Errorf("Current = %q, want %q", cur, "/dashboard")
	}

	if url, ok := h.Back(); !ok || url != "/login" {
		t.Errorf("Back = (%q, %v), want (%q, true)", url, ok, "/login")
	}
	if url, ok := h.Back(); !ok || url != "/" {
		t.Errorf("Back = (%q, %v), want (%q, true)", url, ok, "/")
	}
	if _, ok := h.Back(); ok {
		t.Error("Back moved past the first entry")
	}

	if url, ok := h.Forward(); !ok || url != "/login" {
		t.Errorf("Forward = (%q, %v), want (%q, true)", url, ok, "/login")
	}
}

func TestMemoryHistoryPushTruncatesForward(t *testing.T) {
	h := NewMemoryHistory()
	h.Push("/")
	h.Push("/login")
	h.Back()
	h.Push("/register")

	if _, ok := h.Forward(); ok {
		t.Error("forward entries survived a push")
	}
	if got := h.Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
	if cur, _ := h.Current(); cur != "/register" {
		t.Errorf("Current = %q, want %q", cur, "/register")
	}
}

func TestMemoryHistoryReplace(t *testing.T) {
	h := NewMemoryHistory()

	// Replace on an empty history behaves like Push.
	h.Replace("/")
	if cur, ok := h.Current(); !ok || cur != "/" {
		t.Fatalf("Current = (%q, %v), want (%q, true)", cur, ok, "/")
	}

	h.Push("/login")
	h.Replace("/register")

	if cur, _ := h.Current(); cur != "/register" {
		t.Errorf("Current = %q, want %q", cur, "/register")
	}
	if got := h.Len(); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}
	if url, ok := h.Back(); !ok || url != "/" {
		t.Errorf("Back = (%q, %v), want (%q, true)", url, ok, "/")
	}
}
