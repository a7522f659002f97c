package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewRedisStore(mr.Addr(), ""), mr
}

func TestRedisStoreCreateGetDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
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
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", time.Second)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Get(ctx, token); err != ErrNoSession {
		t.Errorf("expected expired session to yield ErrNoSession, got %v", err)
	}
}

func TestRedisStoreDoesNotStorePlainToken(t *testing.T) {
	store, mr := newTestRedisStore(t)

	token, err := store.Create(context.Background(), "user-1", time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if mr.Exists(sessionRedisKey(token)) {
		t.Error("plaintext token used as a redis key")
	}
	if !mr.Exists(sessionRedisKey(tokenHash(token))) {
		t.Error("hashed token key missing from redis")
	}
}
