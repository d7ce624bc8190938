package http

const (
	formFieldDebug = "debug"
	criteriaPath   = "criteria/"
)
