package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"findability/internal/ports"
)

const (
	codeCompanyNotFound = "company_not_found"
	codeValidation      = "validation_error"
	codeBadRequest      = "bad_request"
	codeRateLimited     = "rate_limited"
	codeInternal        = "internal_error"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Detail: errorDetail{Error: code, Message: msg}})
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("No company with id %d yet... try creating one first.", id)
}

// fail maps service errors onto responses. companyID names the company in
// not-found messages.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, companyID int64) {
	var verr *ports.ValidationError
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, codeCompanyNotFound, notFoundMessage(companyID))
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, verr.Error())
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "request_id", requestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "something went wrong on our side")
	}
}

// decodeJSON reads a JSON body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeError(w, http.StatusUnprocessableEntity, codeValidation,
				fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type))
			return false
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed JSON body: "+err.Error())
		return false
	}
	return true
}
