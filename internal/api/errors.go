package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	labelservice "github.com/thenoetrevino/hue/internal/services/label"
	projectservice "github.com/thenoetrevino/hue/internal/services/project"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
)

var errInvalidBody = errors.New("invalid request body")

// statusFor maps service errors onto HTTP statuses
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, sessionservice.ErrEmptyUser),
		errors.Is(err, labelservice.ErrEmptyName),
		errors.Is(err, labelservice.ErrNameTooLong),
		errors.Is(err, labelservice.ErrInvalidColor),
		errors.Is(err, labelservice.ErrInvalidLabelID),
		errors.Is(err, labelservice.ErrInvalidProjectID),
		errors.Is(err, labelservice.ErrNoChildren),
		errors.Is(err, labelservice.ErrInvalidParent),
		errors.Is(err, projectservice.ErrInvalidProjectID),
		errors.Is(err, projectservice.ErrInvalidSlug):
		return http.StatusBadRequest, CodeInvalidRequest

	case errors.Is(err, sessionservice.ErrNotMember),
		errors.Is(err, sessionservice.ErrForbidden):
		return http.StatusForbidden, CodeForbidden

	case errors.Is(err, sessionservice.ErrProjectNotFound),
		errors.Is(err, projectservice.ErrProjectNotFound),
		errors.Is(err, projectservice.ErrWorkspaceNotFound),
		errors.Is(err, labelservice.ErrLabelNotFound),
		errors.Is(err, labelservice.ErrParentNotFound):
		return http.StatusNotFound, CodeNotFound
	}
	return http.StatusInternalServerError, CodeInternal
}

// writeError writes the error envelope. Internal errors are logged and their
// message is not sent to the caller.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"request_id", RequestID(r.Context()),
			"route", routeTemplate(r),
			"error", err,
		)
		message = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
