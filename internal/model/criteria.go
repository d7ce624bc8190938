package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Time-range fields dropped from embeddable criteria.
const (
	CriteriaStartTime = "starttime"
	CriteriaEndTime   = "endtime"
)

// Criteria maps filter field names to their raw JSON values. Values are kept
// as raw JSON so numbers round trip without float conversion.
type Criteria map[string]json.RawMessage

// ParseCriteria decodes a JSON object. An empty or null body yields an empty Criteria.
func ParseCriteria(b []byte) (Criteria, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return Criteria{}, nil
	}
	var c Criteria
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("criteria must be a JSON object: %w", err)
	}
	if c == nil {
		c = Criteria{}
	}
	return c, nil
}

// Clone returns a deep copy.
func (c Criteria) Clone() Criteria {
	if c == nil {
		return Criteria{}
	}
	out := make(Criteria, len(c))
	for k, v := range c {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Merge returns a copy of c with every field of over applied on top.
func (c Criteria) Merge(over Criteria) Criteria {
	out := c.Clone()
	for k, v := range over {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Embeddable returns a copy without the fixed time window.
func (c Criteria) Embeddable() Criteria {
	out := c.Clone()
	delete(out, CriteriaStartTime)
	delete(out, CriteriaEndTime)
	return out
}

// Encode returns the JSON object form sent as the criteria form field.
func (c Criteria) Encode() (string, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// String returns the field as a Go string when it is a JSON string.
func (c Criteria) String(field string) (string, bool) {
	raw, ok := c[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// FieldUpdate is re-rendered markup for one criteria field.
type FieldUpdate struct {
	ID   string `json:"id"`
	HTML string `json:"html"`
}
