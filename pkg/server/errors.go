package server

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("server: session not found")

// HTTPError is implemented by errors that carry a response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with the status it should produce.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func badRequest(err error) error {
	return StatusError{Code: http.StatusBadRequest, Err: err}
}

// statusFor maps err to a response status. Only a StatusError raised by
// this package picks the code; submitter errors that carry an upstream status
// stay 422 like every other wizard or submitter rejection.
func statusFor(err error) int {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode()
	}
	if errors.Is(err, ErrSessionNotFound) {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

// isWizardError reports whether err came from a wizard operation rather than
// the transport.
func isWizardError(err error) bool {
	for _, target := range []error{
		wizard.ErrUnknownField,
		wizard.ErrProductIndexOutOfRange,
		wizard.ErrLastProduct,
		wizard.ErrUnknownStep,
		wizard.ErrNoSubmitter,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
