package client

import "time"

const (
	// DefaultTimeout bounds one request to the job backend.
	DefaultTimeout = 30 * time.Second

	formFieldCriteria = "criteria"
	exportStatusPath  = "status/"
	maxBodyInError    = 2048
)
