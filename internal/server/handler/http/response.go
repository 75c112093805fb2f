package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/middleware"
	"github.com/atinyakov/ContactKeeper/internal/validation"
)

var validate = validation.New()

// ID is an identifier that decodes from a JSON number or a numeric string.
type ID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return errors.New("id must be an integer")
	}
	*id = ID(n)
	return nil
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type internalErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// decodeAndValidate reads a JSON body into dst and validates it. An empty
// body decodes to the zero value so that validation reports what is missing.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Validationf("invalid request body")
	}
	return validate.Validate(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err according to its kind. Internal failures are logged
// with the request-scoped logger and their cause is never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	status := statusFor(appErr.Kind)
	if status == http.StatusInternalServerError {
		middleware.LoggerFromContext(r.Context()).Error("request failed", zap.Error(err))
		writeJSON(w, status, internalErrorResponse{Status: "error", Message: appErr.Message})
		return
	}
	writeJSON(w, status, errorResponse{Error: appErr.Message, Details: appErr.Details})
}
