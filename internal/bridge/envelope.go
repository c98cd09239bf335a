package bridge

import (
	"errors"

	apperrors "component-inventory-backend/internal/errors"
)

// Envelope is the uniform result of every write operation
type Envelope struct {
	Success bool    `json:"success"`
	ID      *int64  `json:"id,omitempty"`
	Changes *int64  `json:"changes,omitempty"`
	Error   *string `json:"error,omitempty"`
}

func ok() Envelope {
	return Envelope{Success: true}
}

func okWithID(id int64) Envelope {
	return Envelope{Success: true, ID: &id}
}

func failed(msg string) Envelope {
	return Envelope{Success: false, Error: &msg}
}

// userMessage turns a service error into the text shown to the user. Typed domain errors
// carry their own message; anything else becomes fallback so driver text never leaks.
func userMessage(err error, fallback string) string {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return notFoundErr.Error()
	}
	var existsErr *apperrors.AlreadyExistsError
	if errors.As(err, &existsErr) {
		return existsErr.Error()
	}
	if errors.Is(err, apperrors.ErrSchemaMismatch) {
		return apperrors.ErrSchemaMismatch.Error()
	}
	return fallback
}
