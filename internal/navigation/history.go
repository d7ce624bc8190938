// Package navigation keeps the report's browser-style history so a saved
// report can be reopened with back and forward.
package navigation

import (
	"strings"
	"sync"
)

// History is a back/forward stack of report URLs carrying a state token
// in their fragment.
type History struct {
	mu      sync.Mutex
	base    string
	entries []string
	pos     int
}

// New starts a history at reportURL. Any fragment on reportURL is dropped.
func New(reportURL string) *History {
	base, _, _ := strings.Cut(reportURL, "#")
	return &History{base: base, entries: []string{base}}
}

// Push records a new entry for token, discarding any forward entries, and
// returns its URL.
func (h *History) Push(token string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	u := h.base + "#" + token
	h.entries = append(h.entries[:h.pos+1], u)
	h.pos = len(h.entries) - 1
	return u
}

// Back moves one entry back and returns its token. ok is false at the start.
func (h *History) Back() (token string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return TokenOf(h.entries[h.pos]), true
}

// Forward moves one entry forward and returns its token.
func (h *History) Forward() (token string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == len(h.entries)-1 {
		return "", false
	}
	h.pos++
	return TokenOf(h.entries[h.pos]), true
}

// Current is the URL of the active entry.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.pos]
}

// TokenOf returns the fragment of u, which is the saved state token.
func TokenOf(u string) string {
	_, frag, _ := strings.Cut(u, "#")
	return frag
}
