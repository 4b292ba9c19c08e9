package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

var errMissingSrc = errors.New("src query parameter is required")

// HandlerError is the JSON body of every error response.
type HandlerError struct {
	ErrorName        string `json:"errorName"`
	Description      string `json:"description"`
	PossibleSolution string `json:"possibleSolution"`
	RequestID        string `json:"requestId,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, name string, err error, solution string) {
	writeJSON(w, status, HandlerError{
		ErrorName:        name,
		Description:      err.Error(),
		PossibleSolution: solution,
		RequestID:        RequestID(r.Context()),
	})
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, http.StatusBadRequest, "Bad Request", err, "Check your request parameters")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
