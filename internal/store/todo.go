package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/acme/todoflag/internal/model"
)

// TodoStore persists todos. Each method maps to a single statement against
// the todos table; absent rows come back as (nil, nil), never as an error.
type TodoStore struct {
	db *sql.DB
}

func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

func scanTodo(scanner interface{ Scan(...any) error }) (*model.Todo, error) {
	var t model.Todo
	err := scanner.Scan(
		&t.ID, &t.UserID, &t.Name, &t.Estimate, &t.Notes,
		&t.Complete, &t.Created, &t.CompletedOn,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const todoCols = `id, user_id, name, estimate, notes, complete, created, completed_on`

// ListByUser returns all of a user's todos ordered by completion timestamp
// then creation timestamp. Open todos carry completed_on = 0, so they sort
// ahead of completed ones.
func (s *TodoStore) ListByUser(userID string) ([]model.Todo, error) {
	rows, err := s.db.Query(
		`SELECT `+todoCols+` FROM todos WHERE user_id = ? ORDER BY completed_on ASC, created ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

func (s *TodoStore) GetByID(id string) (*model.Todo, error) {
	row := s.db.QueryRow(`SELECT `+todoCols+` FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return t, nil
}

// Create inserts a new open todo and re-reads it by id so the returned
// record reflects exactly what was stored.
func (s *TodoStore) Create(id, userID, name string, estimate int, notes string) (*model.Todo, error) {
	_, err := s.db.Exec(
		`INSERT INTO todos (id, user_id, name, estimate, notes, complete, created) VALUES (?, ?, ?, ?, ?, 0, ?)`,
		id, userID, name, estimate, notes, nowMillis(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return s.GetByID(id)
}

// Complete marks a todo complete and stamps completed_on. Completing an
// already-completed todo overwrites the stamp.
func (s *TodoStore) Complete(id string) error {
	_, err := s.db.Exec(`UPDATE todos SET complete = 1, completed_on = ? WHERE id = ?`, nowMillis(), id)
	if err != nil {
		return fmt.Errorf("complete todo: %w", err)
	}
	return nil
}

func (s *TodoStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func (s *TodoStore) DeleteByUser(userID string) error {
	_, err := s.db.Exec(`DELETE FROM todos WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete user todos: %w", err)
	}
	return nil
}

func (s *TodoStore) DeleteAll() error {
	_, err := s.db.Exec(`DELETE FROM todos`)
	if err != nil {
		return fmt.Errorf("delete all todos: %w", err)
	}
	return nil
}

func (s *TodoStore) CountCompleted() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(id) FROM todos WHERE complete = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completed todos: %w", err)
	}
	return count, nil
}

func (s *TodoStore) DeleteCompleted() error {
	_, err := s.db.Exec(`DELETE FROM todos WHERE complete = 1`)
	if err != nil {
		return fmt.Errorf("delete completed todos: %w", err)
	}
	return nil
}

func (s *TodoStore) CountActiveByUser(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(id) FROM todos WHERE user_id = ? AND complete = 0`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active todos: %w", err)
	}
	return count, nil
}

// UsersWithOpenTodos returns the distinct user ids holding at least one open
// todo, so the reconciler never scans the whole user population.
func (s *TodoStore) UsersWithOpenTodos() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT user_id FROM todos WHERE complete = 0`)
	if err != nil {
		return nil, fmt.Errorf("users with open todos: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
