// Package flagging brings flagged-user state in line with current open todo
// counts. A sweep runs two phases: prune flags whose users have dropped to or
// below the threshold, then flag users who have risen strictly above it.
package flagging

import (
	"log/slog"

	"github.com/acme/todoflag/internal/flagged"
	"github.com/acme/todoflag/internal/identity"
	"github.com/acme/todoflag/internal/todo"
	"github.com/acme/todoflag/internal/websocket"
)

// Reconciler performs one reconciliation sweep at a time. The caller is
// responsible for not running sweeps concurrently.
type Reconciler struct {
	todos    *todo.Service
	flags    *flagged.Service
	resolver identity.Resolver
	hub      *websocket.Hub
	// maxUntilFlagged is the open-todo threshold. Zero or less disables
	// flagging; pruning still runs so stale flags always clear.
	maxUntilFlagged int
	logger          *slog.Logger
}

func NewReconciler(ts *todo.Service, fs *flagged.Service, resolver identity.Resolver, hub *websocket.Hub, maxUntilFlagged int, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		todos:           ts,
		flags:           fs,
		resolver:        resolver,
		hub:             hub,
		maxUntilFlagged: maxUntilFlagged,
		logger:          logger,
	}
}

// Run executes one sweep: prune, then flag. A storage error aborts the rest
// of the run; the next scheduled sweep starts fresh.
func (r *Reconciler) Run() error {
	if err := r.pruneFlagged(); err != nil {
		return err
	}
	return r.flagUsers()
}

// pruneFlagged removes flags for users whose open todo count has fallen to
// or below the threshold. Runs regardless of the threshold value, so
// disabling flagging clears existing flags over time.
func (r *Reconciler) pruneFlagged() error {
	flaggedUsers, err := r.flags.List()
	if err != nil {
		return err
	}

	for _, f := range flaggedUsers {
		numActive, err := r.todos.CountActive(f.UserID)
		if err != nil {
			return err
		}
		if numActive <= r.maxUntilFlagged {
			if err := r.flags.Prune(&f); err != nil {
				return err
			}
			r.logger.Info("pruned flag", "user_id", f.UserID, "num_active", numActive)
			r.broadcast(websocket.NewMessage("flagged_user", "pruned", f.ID, map[string]any{
				"user_id": f.UserID,
			}))
		}
	}
	return nil
}

// flagUsers flags users whose open todo count strictly exceeds the
// threshold. Skipped entirely when the threshold is zero or less.
func (r *Reconciler) flagUsers() error {
	if r.maxUntilFlagged <= 0 {
		return nil
	}

	userIDs, err := r.todos.UsersWithOpenTodos()
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		numTodos, err := r.todos.CountActive(userID)
		if err != nil {
			return err
		}
		if numTodos <= r.maxUntilFlagged {
			continue
		}

		isFlagged, err := r.flags.IsFlagged(userID)
		if err != nil {
			return err
		}
		if isFlagged {
			continue
		}

		username, err := r.resolver.DisplayName(userID)
		if err != nil {
			// Resolution failure never aborts the sweep.
			r.logger.Warn("resolve display name", "user_id", userID, "error", err)
			username = userID
		}

		f, err := r.flags.Flag(userID, username, numTodos)
		if err != nil {
			return err
		}
		r.logger.Info("flagged user", "user_id", userID, "num_todos", numTodos)
		r.broadcast(websocket.NewMessage("flagged_user", "flagged", f.ID, map[string]any{
			"user_id":   f.UserID,
			"num_todos": f.NumTodos,
		}))
	}
	return nil
}

func (r *Reconciler) broadcast(msg websocket.Message) {
	if r.hub != nil {
		r.hub.Broadcast(msg)
	}
}
