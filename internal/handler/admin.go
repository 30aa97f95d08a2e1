package handler

import (
	"log/slog"
	"net/http"

	"github.com/acme/todoflag/internal/flagging"
	"github.com/acme/todoflag/internal/policy"
	"github.com/acme/todoflag/internal/todo"
	"github.com/acme/todoflag/internal/websocket"
)

// AdminHandler exposes the operational endpoints: completed-todo cleanup,
// manual reconciliation, and the policy threshold check.
type AdminHandler struct {
	todos      *todo.Service
	reconciler *flagging.Reconciler
	checker    *policy.Checker
	// maxActiveTodos is the policy-check threshold, configured
	// independently of the reconciler's flagging threshold.
	maxActiveTodos int
	hub            *websocket.Hub
	logger         *slog.Logger
}

func NewAdminHandler(ts *todo.Service, r *flagging.Reconciler, c *policy.Checker, maxActiveTodos int, hub *websocket.Hub, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		todos:          ts,
		reconciler:     r,
		checker:        c,
		maxActiveTodos: maxActiveTodos,
		hub:            hub,
		logger:         logger,
	}
}

// Cleanup deletes all completed todos and reports how many were removed.
func (h *AdminHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	numDeleted, err := h.todos.DeleteCompleted()
	if err != nil {
		h.logger.Error("cleanup completed todos", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete completed todos"))
		return
	}

	if numDeleted > 0 && h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("todo", "cleanup", "", map[string]any{
			"num_deleted": numDeleted,
		}))
	}
	writeJSON(w, http.StatusOK, map[string]int{"num_deleted": numDeleted})
}

// Sweep runs one reconciliation sweep immediately.
func (h *AdminHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	if err := h.reconciler.Run(); err != nil {
		h.logger.Error("manual sweep", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("sweep failed"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PolicyCheck evaluates the configured active-todo threshold for the user in
// the path. Responds 200 with the violation, or 204 when there is none.
func (h *AdminHandler) PolicyCheck(w http.ResponseWriter, r *http.Request) {
	violation, err := h.checker.Evaluate(r.PathValue("userId"), h.maxActiveTodos)
	if err != nil {
		h.logger.Error("policy check", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("policy check failed"))
		return
	}
	if violation == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, violation)
}
