package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"component-inventory-backend/internal/database/models"
	apperrors "component-inventory-backend/internal/errors"
)

// LooseInt decodes an integer sent either as a JSON number or as a string holding one.
// Fractions are truncated. Null, absent and blank values leave Present false; values of
// any other shape are Present but not Valid.
type LooseInt struct {
	Value   int64
	Present bool
	Valid   bool
}

// NewLooseInt returns a present, valid LooseInt
func NewLooseInt(v int64) LooseInt {
	return LooseInt{Value: v, Present: true, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (n *LooseInt) UnmarshalJSON(data []byte) error {
	*n = LooseInt{}

	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	n.Present = true
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		n.Value, n.Valid = v, true
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) &&
		f >= math.MinInt64 && f < math.MaxInt64 {
		n.Value, n.Valid = int64(f), true
	}
	return nil
}

// MarshalJSON writes the value, or null when absent or invalid
func (n LooseInt) MarshalJSON() ([]byte, error) {
	if !n.Present || !n.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(n.Value, 10)), nil
}

// Positive reports whether the value was supplied, parsed and is greater than zero
func (n LooseInt) Positive() bool {
	return n.Present && n.Valid && n.Value > 0
}

var emptyObject = []byte("{}")

// normalizeParameters accepts a JSON object, a JSON string encoding an object, or null
func normalizeParameters(raw json.RawMessage) (models.JSONB, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.JSONB(emptyObject), nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, apperrors.ErrInvalidParametersFormat
		}
		inner := bytes.TrimSpace([]byte(s))
		if len(inner) == 0 {
			return models.JSONB(emptyObject), nil
		}
		trimmed = inner
	}

	if !isJSONObject(trimmed) {
		return nil, apperrors.ErrInvalidParametersFormat
	}
	return models.JSONB(trimmed), nil
}

// storedParameters decodes the document read back from the store; anything that is
// not an object, directly or encoded inside a JSON string, reads as {}
func storedParameters(doc models.JSONB) json.RawMessage {
	trimmed := bytes.TrimSpace(doc)
	if isJSONObject(trimmed) {
		return json.RawMessage(trimmed)
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			inner := bytes.TrimSpace([]byte(s))
			if isJSONObject(inner) {
				return json.RawMessage(inner)
			}
		}
	}
	return json.RawMessage(emptyObject)
}

func isJSONObject(b []byte) bool {
	return len(b) > 0 && b[0] == '{' && json.Valid(b)
}

// trimmedOrNil trims s and maps blank values to nil
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching q as a literal substring
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
