package database

import (
	"testing"

	"github.com/rpupo63/portfolio-backend/models"
)

func TestUserAddAndFindByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty users table, got %d rows", count)
	}

	if err := repo.Add(&models.User{Username: "admin", PasswordHash: "hash"}); err != nil {
		t.Fatalf("add user: %v", err)
	}

	user, err := repo.FindByUsername("admin")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user == nil || user.Username != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	count, err = repo.Count()
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d users, want 1", count)
	}
}

func TestUserFindMissingUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	user, err := repo.FindByUsername("nobody")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for a missing user, got %+v", user)
	}
}

func TestUserDuplicateUsernameRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	if err := repo.Add(&models.User{Username: "admin", PasswordHash: "hash"}); err != nil {
		t.Fatalf("add user: %v", err)
	}
	if err := repo.Add(&models.User{Username: "admin", PasswordHash: "other"}); err == nil {
		t.Fatal("expected a uniqueness violation for the duplicate username")
	}
}
