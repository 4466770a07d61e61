package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/marketway"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	marketway.ECONFLICT:       http.StatusConflict,
	marketway.EINVALID:        http.StatusBadRequest,
	marketway.EEMPTY:          http.StatusBadRequest,
	marketway.EUNINTELLIGIBLE: http.StatusBadRequest,
	marketway.ENOTFOUND:       http.StatusNotFound,
	marketway.EUNAVAILABLE:    http.StatusServiceUnavailable,
	marketway.EINTERNAL:       http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Error writes err as a JSON error response. Internal errors are logged and
// their details hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code, message := marketway.ErrorCode(err), marketway.ErrorMessage(err)

	switch code {
	case marketway.EINTERNAL:
		logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	case marketway.EUNAVAILABLE:
		logger.Warn("collaborator unavailable", "method", r.Method, "path", r.URL.Path, "err", err)
		message = "Sorry, we could not process your request right now: " + message
	}

	writeJSON(w, ErrorStatusCode(code), errorResponse{Detail: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
