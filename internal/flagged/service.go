// Package flagged contains the business logic for flagged-user snapshots.
package flagged

import (
	"github.com/google/uuid"

	"github.com/acme/todoflag/internal/model"
	"github.com/acme/todoflag/internal/store"
)

// Service implements flag creation, pruning, and lookups over a FlagStore.
type Service struct {
	store *store.FlagStore
}

func NewService(fs *store.FlagStore) *Service {
	return &Service{store: fs}
}

// List returns all current flags in storage order.
func (s *Service) List() ([]model.FlaggedUser, error) {
	return s.store.List()
}

// Get returns the flag with the given id, or nil when it does not exist.
// Unlike the todo service, absence is not an error here; callers tolerate it.
func (s *Service) Get(id string) (*model.FlaggedUser, error) {
	return s.store.GetByID(id)
}

// IsFlagged reports whether the user currently has a flag record.
func (s *Service) IsFlagged(userID string) (bool, error) {
	count, err := s.store.CountByUser(userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Flag creates a snapshot record for the user with a fresh id and the
// current timestamp, and returns it re-read from storage.
func (s *Service) Flag(userID, username string, numTodos int) (*model.FlaggedUser, error) {
	return s.store.Create(uuid.NewString(), userID, username, numTodos)
}

// Prune deletes the flag record.
func (s *Service) Prune(f *model.FlaggedUser) error {
	return s.store.Delete(f.ID)
}
