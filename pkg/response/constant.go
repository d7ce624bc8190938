package response

const (
	messageSuccess      = "Success"
	messageUnauthorized = "Unauthorized"
	messageInternal     = "Something went wrong"
)
