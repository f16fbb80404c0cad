package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/caselens/caselens/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps store-layer failures onto HTTP statuses:
// validation problems are the caller's fault, anything else is ours.
func writeStoreError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

// decodeBody decodes a JSON request body into dest. A missing body is an
// error; callers that allow empty bodies check ContentLength first.
func decodeBody(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}
