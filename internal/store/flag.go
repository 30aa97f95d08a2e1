package store

import (
	"database/sql"
	"fmt"

	"github.com/acme/todoflag/internal/model"
)

// FlagStore persists flagged-user snapshots. Uniqueness per user is the
// reconciler's responsibility; the store only does plain row operations.
type FlagStore struct {
	db *sql.DB
}

func NewFlagStore(db *sql.DB) *FlagStore {
	return &FlagStore{db: db}
}

func scanFlaggedUser(scanner interface{ Scan(...any) error }) (*model.FlaggedUser, error) {
	var f model.FlaggedUser
	err := scanner.Scan(&f.ID, &f.UserID, &f.Username, &f.NumTodos, &f.Created)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

const flaggedUserCols = `id, user_id, username, num_todos, created`

func (s *FlagStore) List() ([]model.FlaggedUser, error) {
	rows, err := s.db.Query(`SELECT ` + flaggedUserCols + ` FROM flagged_users`)
	if err != nil {
		return nil, fmt.Errorf("list flagged users: %w", err)
	}
	defer rows.Close()

	var flagged []model.FlaggedUser
	for rows.Next() {
		f, err := scanFlaggedUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flagged user: %w", err)
		}
		flagged = append(flagged, *f)
	}
	return flagged, rows.Err()
}

func (s *FlagStore) GetByID(id string) (*model.FlaggedUser, error) {
	row := s.db.QueryRow(`SELECT `+flaggedUserCols+` FROM flagged_users WHERE id = ?`, id)
	f, err := scanFlaggedUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get flagged user: %w", err)
	}
	return f, nil
}

// Create inserts a flag snapshot and re-reads it by id.
func (s *FlagStore) Create(id, userID, username string, numTodos int) (*model.FlaggedUser, error) {
	_, err := s.db.Exec(
		`INSERT INTO flagged_users (id, user_id, username, num_todos, created) VALUES (?, ?, ?, ?, ?)`,
		id, userID, username, numTodos, nowMillis(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert flagged user: %w", err)
	}
	return s.GetByID(id)
}

func (s *FlagStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM flagged_users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete flagged user: %w", err)
	}
	return nil
}

func (s *FlagStore) CountByUser(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(id) FROM flagged_users WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count flags for user: %w", err)
	}
	return count, nil
}
