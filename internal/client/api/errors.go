package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers transport failures, non-2xx statuses on read
	// paths, and malformed response bodies. Callers fall back to the local
	// cache when they see it.
	ErrUnavailable = errors.New("serveur indisponible")

	// ErrUnauthorized is returned for 401 responses (bad credentials or an
	// expired session).
	ErrUnauthorized = errors.New("non autorisé")

	// ErrValidation is returned for 422 responses on form submissions.
	ErrValidation = errors.New("données invalides")

	// ErrBadRequest is returned for 400 responses; the wrapped message may
	// carry the server-provided detail.
	ErrBadRequest = errors.New("données incorrectes")
)

// StatusError reports a non-2xx status not covered by a sentinel, keeping
// the code available for user-facing messages.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("erreur %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("erreur %d", e.Code)
}

// mapFormStatus translates an auth form response status into an error.
func mapFormStatus(code int, detail string) error {
	switch code {
	case 401:
		return ErrUnauthorized
	case 422:
		return ErrValidation
	case 400:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrBadRequest, detail)
		}
		return ErrBadRequest
	default:
		return &StatusError{Code: code, Detail: detail}
	}
}
