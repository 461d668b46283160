package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	apperrors "parkinglot/internal/errors"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind      apperrors.Kind `json:"kind"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
}

// seconds a client should wait before retrying a transient failure
const retryAfterSeconds = "1"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps err to its status and writes the error body. Internal
// errors hide their cause from the client. Transient failures are flagged
// retryable and carry a Retry-After header.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	he := apperrors.As(err)
	log.Printf("[%s] %s %s -> %d %s: %v", RequestID(r.Context()), r.Method, r.URL.Path, he.Code, he.Kind, err)

	msg := he.Message
	if he.Kind == apperrors.KindInternal {
		msg = "internal error"
	}
	retryable := apperrors.Retryable(he)
	if retryable {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	writeJSON(w, he.Code, errorBody{Error: errorDetail{Kind: he.Kind, Message: msg, Retryable: retryable}})
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperrors.ErrBadRequest("request body is empty")
		case errors.As(err, &maxErr):
			return apperrors.ErrBadRequest("request body is too large")
		default:
			return apperrors.ErrBadRequest("Invalid request: " + err.Error())
		}
	}
	return nil
}
