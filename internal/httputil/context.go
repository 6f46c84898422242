package httputil

import (
	"context"
	"net/http"
)

type (
	userIDKey    struct{}
	requestIDKey struct{}
)

// WithUserID adds the authenticated caller to the request context
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID))
}

// GetUserID returns the authenticated caller, or "" for anonymous requests
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey{}).(string)
	return userID
}

// WithRequestID tags the request with an id that is echoed in logs
func WithRequestID(r *http.Request, requestID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))
}

// GetRequestID returns the request id, or "" if none was assigned
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}
