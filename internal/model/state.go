package model

import (
	"bytes"
	"encoding/json"
)

// CacheStatus is the status embedded in a cached widget payload.
type CacheStatus int

const (
	CacheComplete CacheStatus = 3
	CacheError    CacheStatus = 4
)

// CachedData is a decoded widget data cache.
type CachedData struct {
	Status    CacheStatus
	Payload   json.RawMessage
	Message   string
	Exception string
}

type cachedError struct {
	Status    json.RawMessage `json:"status"`
	Message   string          `json:"message"`
	Exception string          `json:"exception"`
}

// ParseCache decodes a widget data cache. The cache may be the payload itself
// or a JSON string holding it. An object whose status is 4 or the legacy
// string "error" is an error cache; anything else is a complete payload.
// It returns nil when raw carries no cache.
func ParseCache(raw json.RawMessage) *CachedData {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err == nil {
			trimmed := bytes.TrimSpace([]byte(inner))
			if len(trimmed) == 0 {
				return nil
			}
			if json.Valid(trimmed) {
				raw = trimmed
			}
		}
	}

	if raw[0] == '{' {
		var e cachedError
		if err := json.Unmarshal(raw, &e); err == nil && isErrorStatus(e.Status) {
			return &CachedData{Status: CacheError, Payload: raw, Message: e.Message, Exception: e.Exception}
		}
	}
	return &CachedData{Status: CacheComplete, Payload: raw}
}

func isErrorStatus(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == "error"
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return CacheStatus(n) == CacheError
	}
	return false
}

// ErrorCache encodes an error cache with the numeric status.
func ErrorCache(message, exception string) json.RawMessage {
	b, _ := json.Marshal(struct {
		Status    CacheStatus `json:"status"`
		Message   string      `json:"message"`
		Exception string      `json:"exception"`
	}{CacheError, message, exception})
	return b
}

// SavedReportState is a completed report kept for navigation restore.
type SavedReportState struct {
	Meta    Meta             `json:"meta"`
	Widgets []WidgetSnapshot `json:"widgets"`
}

// WidgetSnapshot is one widget of a SavedReportState.
type WidgetSnapshot struct {
	PostURL   string          `json:"posturl"`
	UpdateURL string          `json:"updateurl"`
	Type      TypeTag         `json:"widgettype"`
	ID        WidgetID        `json:"widgetid"`
	Slug      string          `json:"widgetslug"`
	Row       int             `json:"row"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Options   map[string]any  `json:"options,omitempty"`
	Criteria  Criteria        `json:"criteria"`
	// Status is 3 when Data is the job payload and 4 when Data is an error
	// cache. Zero marks a snapshot written without it; Data is then parsed.
	Status CacheStatus     `json:"status,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// Spec turns the snapshot back into a spec whose cache is the saved data.
func (s WidgetSnapshot) Spec() WidgetSpec {
	return WidgetSpec{
		PostURL:   s.PostURL,
		UpdateURL: s.UpdateURL,
		ID:        s.ID,
		Slug:      s.Slug,
		Row:       s.Row,
		Width:     s.Width,
		Height:    s.Height,
		Type:      s.Type,
		Options:   s.Options,
		Criteria:  s.Criteria.Clone(),
		Data:      s.Data,
		Cache:     s.cache(),
	}
}

// cache decodes Data according to Status. A complete payload is kept
// verbatim whatever its shape, including null.
func (s WidgetSnapshot) cache() *CachedData {
	switch s.Status {
	case CacheComplete:
		payload := bytes.TrimSpace(s.Data)
		if bytes.Equal(payload, []byte("null")) {
			payload = nil
		}
		return &CachedData{Status: CacheComplete, Payload: payload}
	case CacheError:
		var e cachedError
		_ = json.Unmarshal(s.Data, &e)
		return &CachedData{Status: CacheError, Payload: s.Data, Message: e.Message, Exception: e.Exception}
	default:
		return nil
	}
}

// Definition rebuilds a report definition from the saved state.
func (s SavedReportState) Definition() ReportDefinition {
	def := ReportDefinition{Meta: s.Meta, Widgets: make([]WidgetSpec, 0, len(s.Widgets))}
	for _, w := range s.Widgets {
		def.Widgets = append(def.Widgets, w.Spec())
	}
	return def
}
