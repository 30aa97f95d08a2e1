package handler

import (
	"log/slog"
	"net/http"

	"github.com/acme/todoflag/internal/flagged"
	"github.com/acme/todoflag/internal/model"
)

type FlaggedUserHandler struct {
	flags  *flagged.Service
	logger *slog.Logger
}

func NewFlaggedUserHandler(fs *flagged.Service, logger *slog.Logger) *FlaggedUserHandler {
	return &FlaggedUserHandler{flags: fs, logger: logger}
}

// List returns all current flagged-user snapshots.
func (h *FlaggedUserHandler) List(w http.ResponseWriter, r *http.Request) {
	flaggedUsers, err := h.flags.List()
	if err != nil {
		h.logger.Error("list flagged users", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list flagged users"))
		return
	}
	if flaggedUsers == nil {
		flaggedUsers = []model.FlaggedUser{}
	}
	writeJSON(w, http.StatusOK, listResult{Objects: flaggedUsers, Count: len(flaggedUsers)})
}
