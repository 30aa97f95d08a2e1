package identity

import (
	"testing"

	"github.com/acme/todoflag/internal/database"
	"github.com/acme/todoflag/internal/store"
)

func setupResolver(t *testing.T) (*DirectoryResolver, *store.UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	us := store.NewUserStore(db)
	return NewDirectoryResolver(us), us
}

func TestDisplayName(t *testing.T) {
	r, us := setupResolver(t)

	if _, err := us.Create("u1", "aaardvark", "Alice Aardvark"); err != nil {
		t.Fatalf("create user: %v", err)
	}

	name, err := r.DisplayName("u1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "Alice Aardvark" {
		t.Errorf("name = %q, want display name", name)
	}
}

func TestDisplayNameFallsBackToUsername(t *testing.T) {
	r, us := setupResolver(t)

	if _, err := us.Create("u1", "aaardvark", ""); err != nil {
		t.Fatalf("create user: %v", err)
	}

	name, err := r.DisplayName("u1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != "aaardvark" {
		t.Errorf("name = %q, want username fallback", name)
	}
}

func TestDisplayNameUnknownUser(t *testing.T) {
	r, _ := setupResolver(t)

	if _, err := r.DisplayName("missing"); err == nil {
		t.Fatal("expected an error for a user not in the directory")
	}
}
