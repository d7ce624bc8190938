package client

import (
	"encoding/json"

	"report-runtime/internal/model"
)

type submitResponse struct {
	JobURL string `json:"joburl"`
}

type pollResponse struct {
	Status    json.RawMessage `json:"status"`
	Progress  json.RawMessage `json:"progress"`
	Data      json.RawMessage `json:"data"`
	ID        json.RawMessage `json:"id"`
	Message   string          `json:"message"`
	Exception string          `json:"exception"`
}

type errorBody struct {
	Message   string `json:"message"`
	Exception string `json:"exception"`
}

type refreshResponse struct {
	Meta    model.Meta `json:"meta"`
	Widgets []struct {
		Criteria model.Criteria `json:"criteria"`
	} `json:"widgets"`
}
