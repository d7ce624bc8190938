package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

var decoders = map[Kind]decodeFunc{
	KindTable:       decodeTable,
	KindChart:       decodeChart,
	KindMap:         decodeMap,
	KindRaw:         decodeRaw,
	KindPassthrough: decodePassthrough,
}

func (r *renderer) Render(ctx context.Context, data json.RawMessage) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrEmptyPayload
	}
	out, err := r.decode(data)
	if err != nil {
		return err
	}
	out.Kind = r.kind

	r.mu.Lock()
	r.last = append(json.RawMessage(nil), data...)
	r.mu.Unlock()

	r.surface.Draw(out)
	return nil
}

func (r *renderer) OnResize() {
	r.mu.Lock()
	last := r.last
	r.mu.Unlock()
	if last == nil {
		return
	}
	if out, err := r.decode(last); err == nil {
		out.Kind = r.kind
		r.surface.Draw(out)
	}
}

func decodeTable(data json.RawMessage) (Rendering, error) {
	var p tablePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Rendering{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	cols := make([]string, 0, len(p.Columns))
	for _, raw := range p.Columns {
		var name string
		if json.Unmarshal(raw, &name) == nil {
			cols = append(cols, name)
			continue
		}
		var c tableColumn
		if err := json.Unmarshal(raw, &c); err != nil {
			return Rendering{}, fmt.Errorf("%w: column: %v", ErrInvalidPayload, err)
		}
		cols = append(cols, firstNonEmpty(c.Label, c.Title, c.Key, c.Data))
	}
	return Rendering{Title: p.ChartTitle, Columns: cols, Rows: len(p.Data)}, nil
}

func decodeChart(data json.RawMessage) (Rendering, error) {
	var p chartPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Rendering{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	rows := len(p.JSON)
	if rows == 0 {
		rows = len(p.Rows)
	}
	series := make([]string, 0, len(p.Values))
	for _, v := range p.Values {
		if label, ok := p.Names[v]; ok && label != "" {
			series = append(series, label)
			continue
		}
		series = append(series, v)
	}
	if len(series) == 0 && len(p.Names) > 0 {
		for _, label := range p.Names {
			series = append(series, label)
		}
		sort.Strings(series)
	}
	return Rendering{Title: p.ChartTitle, Rows: rows, Series: series}, nil
}

func decodeMap(data json.RawMessage) (Rendering, error) {
	var p mapPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Rendering{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	out := Rendering{Title: p.ChartTitle, Markers: len(p.Circles)}
	switch {
	case len(p.MinBounds) == 2:
		out.Bounds = p.MinBounds
	case len(p.Circles) > 0:
		lo, hi := p.Circles[0].Center, p.Circles[0].Center
		for _, c := range p.Circles[1:] {
			for i := 0; i < 2; i++ {
				if c.Center[i] < lo[i] {
					lo[i] = c.Center[i]
				}
				if c.Center[i] > hi[i] {
					hi[i] = c.Center[i]
				}
			}
		}
		out.Bounds = [][2]float64{lo, hi}
	}
	return out, nil
}

func decodeRaw(data json.RawMessage) (Rendering, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return Rendering{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return Rendering{Rows: len(rows), Body: data}, nil
}

func decodePassthrough(data json.RawMessage) (Rendering, error) {
	if !json.Valid(data) {
		return Rendering{}, ErrInvalidPayload
	}
	return Rendering{Body: data}, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}
