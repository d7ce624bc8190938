package render

import (
	"context"
	"encoding/json"

	"report-runtime/internal/model"
)

// Renderer draws one widget's payload onto its surface.
type Renderer interface {
	Render(ctx context.Context, data json.RawMessage) error
	// OnResize redraws the last payload, if any.
	OnResize()
}

// Surface receives finished drawings.
type Surface interface {
	Draw(r Rendering)
}

// New selects the renderer for a widget type. Unknown modules get the
// passthrough renderer, which draws the payload untouched.
func New(tag model.TypeTag, s Surface) Renderer {
	kind, ok := modules[tag.Module]
	if !ok {
		kind = KindPassthrough
	}
	return &renderer{kind: kind, decode: decoders[kind], surface: s}
}

// KindOf reports which renderer New picks for tag.
func KindOf(tag model.TypeTag) Kind {
	if kind, ok := modules[tag.Module]; ok {
		return kind
	}
	return KindPassthrough
}
