package middleware

import (
	"report-runtime/pkg/discord"
	"report-runtime/pkg/log"
)

// Middleware carries what the control API handlers share. A nil discord
// keeps panics local to the log.
type Middleware struct {
	l          log.Logger
	discord    discord.IDiscord
	controlKey string
}

// New builds the control API middleware. An empty controlKey disables ControlAuth.
func New(l log.Logger, d discord.IDiscord, controlKey string) Middleware {
	return Middleware{l: l, discord: d, controlKey: controlKey}
}
