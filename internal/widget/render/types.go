package render

import (
	"encoding/json"
	"sync"
)

// Kind is one of the closed set of renderers.
type Kind string

const (
	KindTable       Kind = "table"
	KindChart       Kind = "chart"
	KindMap         Kind = "map"
	KindRaw         Kind = "raw"
	KindPassthrough Kind = "passthrough"
)

var modules = map[string]Kind{
	"raw":            KindRaw,
	"tables":         KindTable,
	"c3":             KindChart,
	"yui3":           KindChart,
	"maps":           KindMap,
	"google_maps":    KindMap,
	"openstreetmaps": KindMap,
}

// Rendering is the headless result of drawing a payload.
type Rendering struct {
	Kind    Kind     `json:"kind"`
	Title   string   `json:"title,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Rows    int      `json:"rows"`
	Series  []string `json:"series,omitempty"`
	Markers int      `json:"markers,omitempty"`

	// Bounds is [[minLat, minLng], [maxLat, maxLng]] for maps.
	Bounds [][2]float64    `json:"bounds,omitempty"`
	Body   json.RawMessage `json:"body,omitempty"`
}

type renderer struct {
	kind    Kind
	decode  decodeFunc
	surface Surface

	mu   sync.Mutex
	last json.RawMessage
}

type decodeFunc func(data json.RawMessage) (Rendering, error)

type tablePayload struct {
	ChartTitle string            `json:"chartTitle"`
	Columns    []json.RawMessage `json:"columns"`
	Data       []json.RawMessage `json:"data"`
}

type tableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Title string `json:"title"`
	Data  string `json:"data"`
}

type chartPayload struct {
	ChartTitle string            `json:"chartTitle"`
	JSON       []json.RawMessage `json:"json"`
	Rows       []json.RawMessage `json:"rows"`
	Key        string            `json:"key"`
	Values     []string          `json:"values"`
	Names      map[string]string `json:"names"`
}

type mapPayload struct {
	ChartTitle string       `json:"chartTitle"`
	MinBounds  [][2]float64 `json:"minbounds"`
	Circles    []mapCircle  `json:"circles"`
}

type mapCircle struct {
	Center [2]float64 `json:"center"`
	Size   float64    `json:"size"`
	Title  string     `json:"title"`
	Units  string     `json:"units"`
}
