package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/unishop/pkg/model"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code model.ErrorCode, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   &model.APIError{Code: code, Message: msg},
	})
}
