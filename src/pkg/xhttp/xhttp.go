package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/errcode"
)

type response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// OkJson writes a successful JSON response.
func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, response{
		Code: errcode.CodeOK,
		Msg:  "success",
		Data: data,
	})
}

// Ok writes a successful response without a payload.
func Ok(c *gin.Context) {
	c.JSON(http.StatusOK, response{
		Code: errcode.CodeOK,
		Msg:  "success",
	})
}

// Error writes err as a JSON response, preserving its code when it is an
// errcode.Err and falling back to the unexpected code otherwise.
func Error(c *gin.Context, err error) {
	var ec *errcode.Err
	if !errors.As(err, &ec) {
		ec = errcode.NewErr(errcode.CodeUnexpected, err.Error())
	}
	c.JSON(http.StatusOK, response{
		Code: ec.Code,
		Msg:  ec.Msg,
	})
}
