package state

import "errors"

var (
	ErrEmptyToken     = errors.New("state: empty token")
	ErrCorruptedState = errors.New("state: stored report state is not valid")
)
