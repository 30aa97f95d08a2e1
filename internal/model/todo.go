package model

// Todo is a single item on a user's todo list. Timestamps are unix
// milliseconds; CompletedOn is 0 while the todo is open.
type Todo struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Estimate    int    `json:"estimate"`
	Notes       string `json:"notes"`
	Complete    bool   `json:"complete"`
	Created     int64  `json:"created"`
	CompletedOn int64  `json:"completed_on"`
}
