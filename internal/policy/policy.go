// Package policy provides the on-demand active-todo threshold check used by
// an external policy engine. It reads todo counts only; flag state is the
// reconciler's concern and is never consulted here.
package policy

import (
	"github.com/acme/todoflag/internal/todo"
)

// ConstraintName describes the violated constraint on generated violations.
const ConstraintName = "Maximum active todo threshold exceeded"

// Violation records that a user's open todo count exceeded the checked
// threshold, with the observed count as evidence.
type Violation struct {
	UserID     string `json:"user_id"`
	Constraint string `json:"constraint"`
	NumActive  int    `json:"num_active"`
	MaxActive  int    `json:"max_active"`
}

// Checker evaluates threshold violations for single users.
type Checker struct {
	todos *todo.Service
}

func NewChecker(ts *todo.Service) *Checker {
	return &Checker{todos: ts}
}

// Evaluate returns a violation when the user's open todo count strictly
// exceeds maxActive, or nil otherwise. A threshold of zero or less means
// any number of open todos is allowed.
func (c *Checker) Evaluate(userID string, maxActive int) (*Violation, error) {
	if maxActive <= 0 {
		return nil, nil
	}

	numActive, err := c.todos.CountActive(userID)
	if err != nil {
		return nil, err
	}
	if numActive <= maxActive {
		return nil, nil
	}

	return &Violation{
		UserID:     userID,
		Constraint: ConstraintName,
		NumActive:  numActive,
		MaxActive:  maxActive,
	}, nil
}
