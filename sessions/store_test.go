package sessions

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreCreateGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	userID, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("got userID %q, want %q", userID, "user-1")
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := store.Get(ctx, token); err != ErrNoSession {
		t.Errorf("expected ErrNoSession after delete, got %v", err)
	}

	// deleting again must be idempotent
	if err := store.Delete(ctx, token); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", -time.Second)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := store.Get(ctx, token); err != ErrNoSession {
		t.Errorf("expected expired session to yield ErrNoSession, got %v", err)
	}
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "deadbeef"); err != ErrNoSession {
		t.Errorf("expected ErrNoSession for unknown token, got %v", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := store.Create(ctx, "user-1", time.Minute)
		if err != nil {
			t.Fatalf("create session: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token issued: %s", token)
		}
		seen[token] = true
	}
}
