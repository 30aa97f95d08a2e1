package model

// FlaggedUser is a point-in-time snapshot recording that a user's open todo
// count exceeded the configured threshold. Records are never updated, only
// created by the reconciler and pruned once the count falls back under the
// threshold.
type FlaggedUser struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	NumTodos int    `json:"num_todos"`
	Created  int64  `json:"created"`
}
