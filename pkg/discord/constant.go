package discord

import "time"

const (
	defaultBaseURL = "https://discord.com/api/webhooks"

	defaultTimeout    = 10 * time.Second
	defaultRetryCount = 2
	defaultRetryDelay = 500 * time.Millisecond
	defaultUsername   = "report-runtime"

	maxDescriptionLength = 4096
	maxFieldValueLength  = 1024
)

// Embed colours per level.
const (
	colorInfo    = 0x3498DB
	colorWarning = 0xF1C40F
	colorError   = 0xE74C3C
)
