package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Pratik-jagdale/AgentDashBackend/src/kit/validator"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/errcode"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xhttp"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/session"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
	service "github.com/Pratik-jagdale/AgentDashBackend/src/service/v1"
	types "github.com/Pratik-jagdale/AgentDashBackend/src/types/v1"
)

// sessionError maps session guard failures to the API error space.
func sessionError(err error) error {
	if errors.Is(err, session.ErrNotAuthenticated) {
		return errcode.ErrUnauthorized
	}
	return errcode.NewCustomErr(err.Error())
}

// LoginHandler runs the wallet connect flow for the dashboard session.
func LoginHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.Login(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}
		xhttp.OkJson(c, res)
	}
}

// LogoutHandler tears down the wallet session. Always succeeds.
func LogoutHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		service.Logout(c.Request.Context(), svcCtx)
		xhttp.OkJson(c, types.SessionResp{State: svcCtx.Session.State()})
	}
}

// GetSessionHandler reports the current session state and identity.
func GetSessionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		xhttp.OkJson(c, service.GetSession(c.Request.Context(), svcCtx))
	}
}

// SignMessageHandler signs an arbitrary message with the session account.
func SignMessageHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.SignMessageReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, err)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		res, err := service.SignMessage(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.OkJson(c, res)
	}
}

// GetBalanceHandler returns the session account balance in ether.
func GetBalanceHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.GetBalance(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.OkJson(c, res)
	}
}
