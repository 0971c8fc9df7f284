package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
)

// detailer is implemented by errors carrying a list of user-facing messages
type detailer interface {
	Details() []string
}

// ErrorResponse is the JSON body of an error reply
type ErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// Handle logs the error with a message, reports it to Sentry, and returns it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logError(ctx, msg, err, "")
	report(ctx, err)
	return err
}

// HandleHTTP logs the error and writes a JSON error response. 5xx errors are
// reported to Sentry and answered with a generic message.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logError(ctx, "HTTP error", err, statusCode)

	resp := ErrorResponse{Error: err.Error()}
	if statusCode >= http.StatusInternalServerError {
		report(ctx, err)
		resp.Error = http.StatusText(statusCode)
	}
	var d detailer
	if errors.As(err, &d) {
		resp.Errors = d.Details()
		if len(resp.Errors) > 0 {
			resp.Error = resp.Errors[0]
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.From(ctx).Error("failed to write error response", "error", err.Error())
	}
}

func logError(ctx context.Context, msg string, err error, status any) {
	logger := logging.From(ctx)
	args := []any{"error", err.Error()}
	if status != "" {
		args = append(args, "status", status)
	}

	// Extract goerr values for structured logging
	var ge *goerr.Error
	if errors.As(err, &ge) {
		args = append(args, "values", ge.Values(), "stack", ge.Stacks())
	}
	logger.Error(msg, args...)
}

// report sends the error to Sentry when a client is configured
func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub = hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		var ge *goerr.Error
		if errors.As(err, &ge) {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
		}
		hub.CaptureException(err)
	})
}
