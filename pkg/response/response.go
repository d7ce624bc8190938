package response

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"report-runtime/pkg/discord"
	"report-runtime/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Resp is the JSON envelope of every control API response.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// OK writes data with a 200 status.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{ErrorCode: 0, Message: messageSuccess, Data: data})
}

// Accepted writes data with a 202 status.
func Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, Resp{ErrorCode: 0, Message: messageSuccess, Data: data})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{ErrorCode: http.StatusUnauthorized, Message: messageUnauthorized})
}

// Error writes err as JSON. HTTPError and ValidationError keep their status;
// anything else is a 500 and is reported to Discord when d is set.
func Error(c *gin.Context, err error, d discord.IDiscord) {
	var httpErr *errors.HTTPError
	if stderrors.As(err, &httpErr) {
		c.JSON(httpErr.Status(), Resp{ErrorCode: httpErr.Code, Message: httpErr.Message})
		return
	}

	var valErr *errors.ValidationError
	if stderrors.As(err, &valErr) {
		c.JSON(http.StatusBadRequest, Resp{ErrorCode: http.StatusBadRequest, Message: valErr.Error(), Errors: valErr.Fields})
		return
	}

	reportInternal(c, err, d)
	c.JSON(http.StatusInternalServerError, Resp{ErrorCode: http.StatusInternalServerError, Message: messageInternal})
}

// PanicError writes a 500 for a recovered panic value.
func PanicError(c *gin.Context, rec any, d discord.IDiscord) {
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	reportInternal(c, err, d)
	c.JSON(http.StatusInternalServerError, Resp{ErrorCode: http.StatusInternalServerError, Message: messageInternal})
}

func reportInternal(c *gin.Context, err error, d discord.IDiscord) {
	if d == nil {
		return
	}
	desc := fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path)
	_ = d.SendError(c.Request.Context(), "Internal server error", desc, err)
}
