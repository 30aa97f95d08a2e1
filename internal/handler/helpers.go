package handler

import (
	"encoding/json"
	"net/http"
)

// listResult wraps list responses with their count.
type listResult struct {
	Objects any `json:"objects"`
	Count   int `json:"count"`
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
