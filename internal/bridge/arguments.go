package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"component-inventory-backend/internal/service"
)

var (
	// ErrNotReady is returned while the store connection is still being established
	ErrNotReady = errors.New("bridge is not ready: database connection not established")
	// ErrUnknownOperation is returned for names outside the operation registry
	ErrUnknownOperation = errors.New("unknown operation")
)

// ArgumentError reports a call whose positional arguments do not match the
// operation's schema
type ArgumentError struct {
	Operation string
	Index     int // -1 when the arity itself is wrong
	Reason    string
}

func (e *ArgumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
	}
	return fmt.Sprintf("%s: argument %d: %s", e.Operation, e.Index, e.Reason)
}

// IsArgumentError checks if an error is an ArgumentError
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr)
}

// args wraps the raw positional arguments of one call
type args struct {
	op  string
	raw []json.RawMessage
}

func (a args) arity(max int) error {
	if len(a.raw) > max {
		return &ArgumentError{Operation: a.op, Index: -1, Reason: fmt.Sprintf("expected at most %d arguments, got %d", max, len(a.raw))}
	}
	return nil
}

// at returns the i-th argument, treating missing arguments as JSON null
func (a args) at(i int) []byte {
	if i >= len(a.raw) {
		return nil
	}
	b := bytes.TrimSpace(a.raw[i])
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	return b
}

// id decodes a required identifier: an integer or a string holding one
func (a args) id(i int) (int64, error) {
	b := a.at(i)
	if b == nil {
		return 0, &ArgumentError{Operation: a.op, Index: i, Reason: "id is required"}
	}
	var n service.LooseInt
	if err := json.Unmarshal(b, &n); err != nil || !n.Valid {
		return 0, &ArgumentError{Operation: a.op, Index: i, Reason: "id must be an integer"}
	}
	return n.Value, nil
}

// optionalID decodes an identifier where null, absent, blank and zero all mean "none"
func (a args) optionalID(i int) (*int64, error) {
	b := a.at(i)
	if b == nil {
		return nil, nil
	}
	var n service.LooseInt
	if err := json.Unmarshal(b, &n); err != nil || (n.Present && !n.Valid) {
		return nil, &ArgumentError{Operation: a.op, Index: i, Reason: "id must be an integer or null"}
	}
	if !n.Present || n.Value == 0 {
		return nil, nil
	}
	return &n.Value, nil
}

// text decodes a string argument; null or absent reads as ""
func (a args) text(i int) (string, error) {
	b := a.at(i)
	if b == nil {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return "", &ArgumentError{Operation: a.op, Index: i, Reason: "expected a string"}
	}
	return s, nil
}

// component decodes a component snapshot, which must be a JSON object
func (a args) component(i int) (*service.ComponentRequest, error) {
	b := a.at(i)
	if b == nil || b[0] != '{' {
		return nil, &ArgumentError{Operation: a.op, Index: i, Reason: "expected a component object"}
	}
	var req service.ComponentRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return nil, &ArgumentError{Operation: a.op, Index: i, Reason: "malformed component object: " + err.Error()}
	}
	return &req, nil
}
