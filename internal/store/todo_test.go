package store

import (
	"database/sql"
	"testing"

	"github.com/acme/todoflag/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTodoCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	created, err := s.Create("t1", "u1", "Write report", 30, "quarterly numbers")
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if created.ID != "t1" {
		t.Errorf("id = %q, want %q", created.ID, "t1")
	}
	if created.UserID != "u1" {
		t.Errorf("user_id = %q, want %q", created.UserID, "u1")
	}
	if created.Name != "Write report" {
		t.Errorf("name = %q, want %q", created.Name, "Write report")
	}
	if created.Estimate != 30 {
		t.Errorf("estimate = %d, want 30", created.Estimate)
	}
	if created.Complete {
		t.Error("new todo should not be complete")
	}
	if created.Created == 0 {
		t.Error("created timestamp should be set")
	}
	if created.CompletedOn != 0 {
		t.Errorf("completed_on = %d, want 0 for open todo", created.CompletedOn)
	}

	got, err := s.GetByID("t1")
	if err != nil {
		t.Fatalf("get todo: %v", err)
	}
	if got == nil || got.Name != "Write report" {
		t.Fatalf("got %+v, want stored todo", got)
	}
}

func TestTodoGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	got, err := s.GetByID("missing")
	if err != nil {
		t.Fatalf("get todo: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent todo")
	}
}

func TestTodoComplete(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	if _, err := s.Create("t1", "u1", "Task", 5, ""); err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if err := s.Complete("t1"); err != nil {
		t.Fatalf("complete todo: %v", err)
	}

	got, err := s.GetByID("t1")
	if err != nil {
		t.Fatalf("get todo: %v", err)
	}
	if !got.Complete {
		t.Error("todo should be complete")
	}
	if got.CompletedOn == 0 {
		t.Error("completed_on should be set")
	}
}

func TestTodoListByUserOrdering(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	for _, id := range []string{"a", "b", "c", "d"} {
		if _, err := s.Create(id, "u1", "Task "+id, 5, ""); err != nil {
			t.Fatalf("create todo %s: %v", id, err)
		}
	}

	// Pin timestamps so ordering is deterministic: "b" and "d" completed,
	// open todos "c" then "a" by creation order.
	fixtures := []struct {
		id          string
		created     int64
		completedOn int64
	}{
		{"a", 400, 0},
		{"b", 100, 2000},
		{"c", 300, 0},
		{"d", 200, 1000},
	}
	for _, f := range fixtures {
		if _, err := db.Exec(
			`UPDATE todos SET created = ?, completed_on = ?, complete = ? WHERE id = ?`,
			f.created, f.completedOn, f.completedOn != 0, f.id,
		); err != nil {
			t.Fatalf("pin timestamps for %s: %v", f.id, err)
		}
	}

	todos, err := s.ListByUser("u1")
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}

	want := []string{"c", "a", "d", "b"}
	if len(todos) != len(want) {
		t.Fatalf("got %d todos, want %d", len(todos), len(want))
	}
	for i, id := range want {
		if todos[i].ID != id {
			t.Errorf("todos[%d].ID = %q, want %q", i, todos[i].ID, id)
		}
	}
}

func TestTodoDeleteByUser(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	s.Create("t1", "u1", "A", 5, "")
	s.Create("t2", "u1", "B", 5, "")
	s.Create("t3", "u2", "C", 5, "")

	if err := s.DeleteByUser("u1"); err != nil {
		t.Fatalf("delete user todos: %v", err)
	}

	u1, _ := s.ListByUser("u1")
	if len(u1) != 0 {
		t.Errorf("u1 has %d todos, want 0", len(u1))
	}
	u2, _ := s.ListByUser("u2")
	if len(u2) != 1 {
		t.Errorf("u2 has %d todos, want 1", len(u2))
	}
}

func TestTodoDeleteAll(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	s.Create("t1", "u1", "A", 5, "")
	s.Create("t2", "u2", "B", 5, "")

	if err := s.DeleteAll(); err != nil {
		t.Fatalf("delete all todos: %v", err)
	}

	for _, user := range []string{"u1", "u2"} {
		todos, _ := s.ListByUser(user)
		if len(todos) != 0 {
			t.Errorf("%s has %d todos after delete all", user, len(todos))
		}
	}
}

func TestTodoCompletedCountAndDelete(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	s.Create("t1", "u1", "A", 5, "")
	s.Create("t2", "u1", "B", 5, "")
	s.Create("t3", "u2", "C", 5, "")
	s.Complete("t1")
	s.Complete("t3")

	count, err := s.CountCompleted()
	if err != nil {
		t.Fatalf("count completed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	if err := s.DeleteCompleted(); err != nil {
		t.Fatalf("delete completed: %v", err)
	}

	count, _ = s.CountCompleted()
	if count != 0 {
		t.Errorf("count after delete = %d, want 0", count)
	}
	remaining, _ := s.GetByID("t2")
	if remaining == nil {
		t.Error("open todo t2 should survive completed cleanup")
	}
}

func TestTodoCountActiveByUser(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	s.Create("t1", "u1", "A", 5, "")
	s.Create("t2", "u1", "B", 5, "")
	s.Create("t3", "u1", "C", 5, "")
	s.Complete("t2")

	count, err := s.CountActiveByUser("u1")
	if err != nil {
		t.Fatalf("count active: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	count, _ = s.CountActiveByUser("nobody")
	if count != 0 {
		t.Errorf("count for unknown user = %d, want 0", count)
	}
}

func TestTodoUsersWithOpenTodos(t *testing.T) {
	db := setupTestDB(t)
	s := NewTodoStore(db)

	s.Create("t1", "u1", "A", 5, "")
	s.Create("t2", "u1", "B", 5, "")
	s.Create("t3", "u2", "C", 5, "")
	s.Create("t4", "u3", "D", 5, "")
	s.Complete("t4")

	userIDs, err := s.UsersWithOpenTodos()
	if err != nil {
		t.Fatalf("users with open todos: %v", err)
	}

	seen := make(map[string]bool)
	for _, id := range userIDs {
		seen[id] = true
	}
	if len(userIDs) != 2 || !seen["u1"] || !seen["u2"] {
		t.Errorf("userIDs = %v, want u1 and u2 only", userIDs)
	}
}
