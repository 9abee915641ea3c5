package tasks

import (
	"errors"
	"fmt"

	"github.com/yukikurage/task-tracker/internal/apiclient"
)

const networkErrorMessage = "No response received from server. Check your network connection."

// ValidationError reports a local precondition failure. No request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// OperationError carries a human-readable message for a failed operation and
// wraps the transport error that caused it.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// wrapf prefixes err with a description of the failed operation
func wrapf(err error, format string, args ...any) error {
	prefix := fmt.Sprintf(format, args...)
	return &OperationError{Message: prefix + ": " + err.Error(), Err: err}
}

// mutationError turns a create/update transport failure into a message fit
// for display: the server's own message, a network hint, or the setup cause.
func mutationError(verb string, err error) error {
	var (
		httpErr     *apiclient.HTTPError
		unreachable *apiclient.TransportUnreachableError
		setupErr    *apiclient.RequestSetupError
	)

	switch {
	case errors.As(err, &httpErr):
		return &OperationError{Message: fmt.Sprintf("Failed to %s task: %s", verb, httpErr.Message()), Err: err}
	case errors.As(err, &unreachable):
		return &OperationError{Message: networkErrorMessage, Err: err}
	case errors.As(err, &setupErr):
		return &OperationError{Message: fmt.Sprintf("Error %s task: %v", gerund(verb), setupErr.Err), Err: err}
	default:
		return &OperationError{Message: fmt.Sprintf("Failed to %s task: %v", verb, err), Err: err}
	}
}

func gerund(verb string) string {
	switch verb {
	case "create":
		return "creating"
	case "update":
		return "updating"
	}
	return verb
}
