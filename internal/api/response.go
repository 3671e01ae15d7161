package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"parkinglot/internal/entities"
	apperrors "parkinglot/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, entities.ErrorResponse{Error: msg})
}

// writeError answers with the status of an HTTPError, or 500 for anything else.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeErrorMessage(w, httpErr.Code, httpErr.Message)
		return
	}
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
}
