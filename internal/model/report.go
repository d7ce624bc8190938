package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ReportDefinition is the server's answer to a report run: metadata plus
// the ordered widget list. It replaces the previous widget set on every run.
type ReportDefinition struct {
	Meta    Meta         `json:"meta"`
	Widgets []WidgetSpec `json:"widgets"`
}

// Meta is the server timestamp and timezone a report or reload was computed at.
type Meta struct {
	Datetime string `json:"datetime"`
	Timezone string `json:"timezone"`
	Debug    bool   `json:"debug,omitempty"`
}

// WidgetSpec declares one widget of a report.
type WidgetSpec struct {
	PostURL   string         `json:"posturl"`
	UpdateURL string         `json:"updateurl"`
	ID        WidgetID       `json:"widgetid"`
	Slug      string         `json:"widgetslug"`
	Row       int            `json:"row"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Type      TypeTag        `json:"widgettype"`
	Options   map[string]any `json:"options,omitempty"`
	Criteria  Criteria       `json:"criteria"`
	// Data is an optional pre-computed cache, see ParseCache.
	Data json.RawMessage `json:"data,omitempty"`
	// Cache, when set, is used as is and Data is not parsed. Restored
	// snapshots set it so saved payloads are never reinterpreted.
	Cache *CachedData `json:"-"`
}

// WidgetID is a widget identifier that the server may send as a number or a string.
type WidgetID string

func (id *WidgetID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = WidgetID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("widget id: %w", err)
	}
	*id = WidgetID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as numbers.
func (id WidgetID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id WidgetID) String() string {
	return string(id)
}

// TypeTag names the render adapter of a widget as module and class,
// e.g. {"tables", "TableWidget"}.
type TypeTag struct {
	Module string
	Class  string
}

var errTypeTag = errors.New("widget type must be [module, class] or \"module.class\"")

func (t *TypeTag) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err == nil {
		if len(pair) != 2 {
			return errTypeTag
		}
		t.Module, t.Class = pair[0], pair[1]
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errTypeTag
	}
	module, class, ok := strings.Cut(s, ".")
	if !ok {
		return errTypeTag
	}
	t.Module, t.Class = module, class
	return nil
}

func (t TypeTag) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{t.Module, t.Class})
}

func (t TypeTag) String() string {
	return t.Module + "." + t.Class
}

// ParseReportDefinition decodes and checks a report definition body.
func ParseReportDefinition(body []byte) (ReportDefinition, error) {
	var def ReportDefinition
	if err := json.Unmarshal(body, &def); err != nil {
		return ReportDefinition{}, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}
	for i, w := range def.Widgets {
		if w.PostURL == "" && len(w.Data) == 0 {
			return ReportDefinition{}, fmt.Errorf("%w: widget %d has neither posturl nor data", ErrMalformedDefinition, i)
		}
	}
	return def, nil
}

// ErrMalformedDefinition is returned for report definitions that cannot be used.
var ErrMalformedDefinition = errors.New("malformed report definition")
