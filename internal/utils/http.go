package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// WriteJSON serializes data and writes it with statusCode and a JSON
// content type.
//
// If marshaling fails nothing of data is sent: the client gets a 500 with
// a generic JSON error body and the marshal error is returned.
//
// Example usage:
//
//	WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
//	WriteJSON(w, models.ErrorResponse{Error: "Not found"}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) error {
	body, err := json.Marshal(data)
	if err != nil {
		body, statusCode = []byte(`{"error":"Internal server error"}`), http.StatusInternalServerError
		err = fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(statusCode)

	if _, werr := w.Write(body); werr != nil && err == nil {
		err = fmt.Errorf("writing response: %w", werr)
	}
	return err
}

// WriteText writes text as a text/plain body with statusCode.
func WriteText(w http.ResponseWriter, text string, statusCode int) error {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(text)))
	w.WriteHeader(statusCode)

	if _, err := w.Write([]byte(text)); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
