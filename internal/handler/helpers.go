package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"dataroom/internal/domain"
	dataroomSvc "dataroom/internal/domain/services/dataroom"
	"dataroom/internal/httputil"
)

// handleError converts domain errors to RFC 7807 responses. The detail is the
// user-facing message; infrastructure errors are logged and reported as 500.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := domain.StatusCode(err)
	message := domain.UserMessage(err)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		httputil.RespondErrorWithExtras(w, status, message, map[string]any{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
		return
	}

	httputil.RespondError(w, status, message)
}

// requireUserID returns the authenticated caller, or writes a 401 and returns false
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, domain.UserMessage(domain.ErrUnauthorized))
		return "", false
	}
	return userID, true
}

// toOptional maps the JSON tri-state onto the service tri-state
func toOptional(o httputil.OptionalString) dataroomSvc.Optional {
	return dataroomSvc.Optional{Present: o.Present, Value: o.Value}
}

// optionalID reads an optional id from a form or query value; empty means root
func optionalID(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// message is the body of responses that carry no resource
type message struct {
	Message string `json:"message"`
}
