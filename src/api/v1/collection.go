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

// GetCollectionsHandler returns the cached collection snapshot for the
// session address.
func GetCollectionsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.GetCollections(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.OkJson(c, res)
	}
}

// RefreshCollectionsHandler re-runs collection acquisition on demand.
func RefreshCollectionsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.RefreshCollections(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.OkJson(c, res)
	}
}

// MintHandler submits a mint transfer from the session account.
func MintHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.MintReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, err)
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewCustomErr(err.Error()))
			return
		}

		res, err := service.Mint(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, sessionError(err))
			return
		}
		xhttp.OkJson(c, res)
	}
}
