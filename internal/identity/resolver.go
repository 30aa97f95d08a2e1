// Package identity resolves user ids to display names.
package identity

import (
	"fmt"

	"github.com/acme/todoflag/internal/store"
)

// Resolver maps a user id to a human-readable display name. Implementations
// may fail; callers are expected to fall back to the raw id.
type Resolver interface {
	DisplayName(userID string) (string, error)
}

// DirectoryResolver resolves display names from the identity directory.
type DirectoryResolver struct {
	users *store.UserStore
}

func NewDirectoryResolver(us *store.UserStore) *DirectoryResolver {
	return &DirectoryResolver{users: us}
}

func (r *DirectoryResolver) DisplayName(userID string) (string, error) {
	u, err := r.users.GetByID(userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", fmt.Errorf("user %q not in directory", userID)
	}
	if u.DisplayName != "" {
		return u.DisplayName, nil
	}
	return u.Username, nil
}
