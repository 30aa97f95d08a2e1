package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/acme/todoflag/internal/auth"
	"github.com/acme/todoflag/internal/model"
	"github.com/acme/todoflag/internal/todo"
	"github.com/acme/todoflag/internal/websocket"
)

type TodoHandler struct {
	todos  *todo.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewTodoHandler(ts *todo.Service, hub *websocket.Hub, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: ts, hub: hub, logger: logger}
}

func (h *TodoHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type todoRequest struct {
	Name  string `json:"name"`
	Time  int    `json:"time"`
	Notes string `json:"notes"`
}

// List returns the caller's todos, open ones first.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.ListForUser(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("list todos", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list todos"))
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	writeJSON(w, http.StatusOK, listResult{Objects: todos, Count: len(todos)})
}

// Create adds a todo for the caller. Empty name and non-positive time are
// replaced by the configured defaults, not rejected.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}

	t, err := h.todos.Create(auth.UserID(r.Context()), req.Name, req.Time, req.Notes)
	if err != nil {
		h.logger.Error("create todo", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create todo"))
		return
	}

	h.broadcast(websocket.NewMessage("todo", "created", t.ID, map[string]any{
		"user_id": t.UserID,
	}))
	writeJSON(w, http.StatusCreated, t)
}

// Get returns a single todo. Only the owner may read it.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.ownedTodo(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Complete marks the caller's todo complete.
func (h *TodoHandler) Complete(w http.ResponseWriter, r *http.Request) {
	t, ok := h.ownedTodo(w, r)
	if !ok {
		return
	}

	if err := h.todos.Complete(t); err != nil {
		h.logger.Error("complete todo", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to complete todo"))
		return
	}

	h.broadcast(websocket.NewMessage("todo", "completed", t.ID, map[string]any{
		"user_id": t.UserID,
	}))
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes the caller's todo.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	t, ok := h.ownedTodo(w, r)
	if !ok {
		return
	}

	if err := h.todos.Delete(t); err != nil {
		h.logger.Error("delete todo", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete todo"))
		return
	}

	h.broadcast(websocket.NewMessage("todo", "deleted", t.ID, map[string]any{
		"user_id": t.UserID,
	}))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteForUser removes every todo owned by the user in the path. Requires
// the ViewIdentity right (enforced by the route middleware).
func (h *TodoHandler) DeleteForUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if err := h.todos.DeleteForUser(userID); err != nil {
		h.logger.Error("delete user todos", "error", err, "user_id", userID)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete todos"))
		return
	}

	h.broadcast(websocket.NewMessage("todo", "cleared", "", map[string]any{
		"user_id": userID,
	}))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll removes every todo in the system. Requires SystemAdmin.
func (h *TodoHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.todos.DeleteAll(); err != nil {
		h.logger.Error("delete all todos", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete todos"))
		return
	}

	h.broadcast(websocket.NewMessage("todo", "cleared", "", nil))
	w.WriteHeader(http.StatusNoContent)
}

// ownedTodo loads the todo from the path and verifies the caller owns it.
// It writes the error response itself and reports success via ok.
func (h *TodoHandler) ownedTodo(w http.ResponseWriter, r *http.Request) (*model.Todo, bool) {
	t, err := h.todos.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("todo not found"))
			return nil, false
		}
		h.logger.Error("get todo", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get todo"))
		return nil, false
	}

	if t.UserID != auth.UserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorBody("user does not have access to the todo"))
		return nil, false
	}
	return t, true
}
