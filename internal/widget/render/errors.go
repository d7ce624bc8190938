package render

import "errors"

var (
	ErrEmptyPayload   = errors.New("render: empty payload")
	ErrInvalidPayload = errors.New("render: payload does not match widget type")
)
