// Package todo contains the business logic for per-user todo lists.
package todo

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/acme/todoflag/internal/model"
	"github.com/acme/todoflag/internal/store"
)

// ErrNotFound is returned by Get when no todo exists with the requested id,
// so callers can tell "absent" apart from a storage failure.
var ErrNotFound = errors.New("todo not found")

// Config holds the resolved settings for todo creation defaults.
type Config struct {
	// DefaultName is substituted when a todo is created with an empty name.
	DefaultName string
	// DefaultEstimate is substituted when a todo is created with an
	// estimate of zero or less.
	DefaultEstimate int
}

// Service implements the todo lifecycle over a TodoStore.
type Service struct {
	store *store.TodoStore
	cfg   Config
}

func NewService(ts *store.TodoStore, cfg Config) *Service {
	return &Service{store: ts, cfg: cfg}
}

// ListForUser returns all of a user's todos, open ones first, ties broken by
// creation order.
func (s *Service) ListForUser(userID string) ([]model.Todo, error) {
	return s.store.ListByUser(userID)
}

// Get returns the todo with the given id, or ErrNotFound.
func (s *Service) Get(id string) (*model.Todo, error) {
	t, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("todo %q: %w", id, ErrNotFound)
	}
	return t, nil
}

// Create persists a new open todo for the user, assigning a fresh id and
// substituting the configured defaults for an empty name or a non-positive
// estimate. The returned record is re-read from storage, so it reflects the
// substituted values and the stored timestamp.
func (s *Service) Create(userID, name string, estimate int, notes string) (*model.Todo, error) {
	if name == "" {
		name = s.cfg.DefaultName
	}
	if estimate <= 0 {
		estimate = s.cfg.DefaultEstimate
	}
	return s.store.Create(uuid.NewString(), userID, name, estimate, notes)
}

// Complete marks the todo complete. Re-completing is not rejected; the
// completion timestamp is simply overwritten.
func (s *Service) Complete(t *model.Todo) error {
	return s.store.Complete(t.ID)
}

// Delete removes a single todo.
func (s *Service) Delete(t *model.Todo) error {
	return s.store.Delete(t.ID)
}

// DeleteForUser removes every todo owned by the user.
func (s *Service) DeleteForUser(userID string) error {
	return s.store.DeleteByUser(userID)
}

// DeleteAll removes every todo in the system.
func (s *Service) DeleteAll() error {
	return s.store.DeleteAll()
}

// DeleteCompleted removes all completed todos and returns how many there
// were. The count is taken before deletion because the delete itself does
// not report affected rows.
func (s *Service) DeleteCompleted() (int, error) {
	count, err := s.store.CountCompleted()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		if err := s.store.DeleteCompleted(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// CountActive returns the number of open todos owned by the user.
func (s *Service) CountActive(userID string) (int, error) {
	return s.store.CountActiveByUser(userID)
}

// UsersWithOpenTodos returns the ids of users holding at least one open todo.
func (s *Service) UsersWithOpenTodos() ([]string, error) {
	return s.store.UsersWithOpenTodos()
}
