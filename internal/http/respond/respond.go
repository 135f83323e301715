// Package respond writes JSON bodies and classified errors for HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/apperr"
)

var (
	ErrInvalidBody = apperr.New(apperr.KindValidation, "INVALID_BODY", "request body is not valid JSON")
	ErrInvalidID   = apperr.New(apperr.KindValidation, "INVALID_ID", "id must be a UUID")
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status of its apperr kind. Unclassified errors are
// logged and reported as a generic internal error.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)

	detail := errorDetail{Code: apperr.CodeOf(err), Message: "internal error"}

	var appErr *apperr.Error
	if kind != apperr.KindInternal && errors.As(err, &appErr) {
		detail.Message = appErr.Message
	}

	if kind == apperr.KindInternal || kind == apperr.KindDependency {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}

	JSON(w, kind.HTTPStatus(), errorBody{Error: detail})
}

// Decode reads a JSON body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	return nil
}

// PathID parses a UUID path parameter.
func PathID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}

	return id, nil
}
