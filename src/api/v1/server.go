package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Pratik-jagdale/AgentDashBackend/src/kit/validator"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/errcode"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xhttp"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
	service "github.com/Pratik-jagdale/AgentDashBackend/src/service/v1"
	types "github.com/Pratik-jagdale/AgentDashBackend/src/types/v1"
)

func bindRegistration(c *gin.Context) (types.RegisterServerReq, bool) {
	req := types.RegisterServerReq{}
	if err := c.BindJSON(&req); err != nil {
		xhttp.Error(c, err)
		return req, false
	}
	// Path parameter wins over the body on update and delete routes.
	if serverID := c.Params.ByName("serverId"); serverID != "" {
		req.ServerID = serverID
	}
	if err := validator.Verify(&req); err != nil {
		xhttp.Error(c, errcode.NewCustomErr(err.Error()))
		return req, false
	}
	return req, true
}

// RegisterServerHandler binds a Discord server to a collection token and
// returns the bot invite link.
func RegisterServerHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRegistration(c)
		if !ok {
			return
		}

		res, err := service.RegisterServer(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.OkJson(c, res)
	}
}

// UpdateServerHandler rebinds a registered server to a different token.
func UpdateServerHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRegistration(c)
		if !ok {
			return
		}

		if err := service.UpdateServer(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.Ok(c)
	}
}

// DeleteServerHandler removes a server registration.
func DeleteServerHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindRegistration(c)
		if !ok {
			return
		}

		if err := service.DeleteServer(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.Ok(c)
	}
}

// RegistrationAuditHandler lists the caller's registration attempts.
func RegistrationAuditHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.ListRegistrationAudit(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.OkJson(c, res)
	}
}

// ListServersHandler lists the caller's registered servers.
func ListServersHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.ListServers(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.OkJson(c, res)
	}
}
