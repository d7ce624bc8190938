package presenter

import (
	"sync"
	"time"

	"report-runtime/internal/widget"
	"report-runtime/internal/widget/render"
	"report-runtime/pkg/discord"
	"report-runtime/pkg/log"
)

// Page is what the report page currently shows.
type Page struct {
	Datetime       string       `json:"datetime"`
	Timezone       string       `json:"timezone"`
	ActionsEnabled bool         `json:"actions_enabled"`
	FormErrors     string       `json:"form_errors,omitempty"`
	Location       string       `json:"location,omitempty"`
	Alerts         []Alert      `json:"alerts"`
	Navigations    []string     `json:"navigations"`
	History        []string     `json:"history"`
	Widgets        []WidgetPage `json:"widgets"`
}

type Alert struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}

// WidgetPage is one widget's surface.
type WidgetPage struct {
	ID        string             `json:"id"`
	Slug      string             `json:"slug,omitempty"`
	Loading   bool               `json:"loading"`
	Progress  int                `json:"progress"`
	Error     *widget.ErrorPanel `json:"error,omitempty"`
	Rendering *render.Rendering  `json:"rendering,omitempty"`
	Draws     int                `json:"draws"`
}

type implPresenter struct {
	l       log.Logger
	discord discord.IDiscord
	cfg     Config

	mu             sync.Mutex
	datetime       string
	timezone       string
	actionsEnabled bool
	formErrors     string
	alerts         []Alert
	navigations    []string
	history        []string
	order          []string
	views          map[string]*widgetView
}

type widgetView struct {
	l    log.Logger
	id   string
	slug string

	mu        sync.Mutex
	loading   bool
	progress  int
	panel     *widget.ErrorPanel
	rendering *render.Rendering
	draws     int
}
