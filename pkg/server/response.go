package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/backdrop/pkg/errors"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status through its code.
func writeError(w http.ResponseWriter, err error) {
	code := errors.Classify(err)
	writeJSON(w, errors.HTTPStatus(code), errorBody{Code: code, Message: errors.UserMessage(err)})
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}
