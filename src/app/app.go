package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Pratik-jagdale/AgentDashBackend/src/config"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xzap"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
)

// Platform holds the assembled application.
type Platform struct {
	config    *config.Config
	router    *gin.Engine
	serverCtx *svc.ServerCtx
}

func NewPlatform(config *config.Config, router *gin.Engine, serverCtx *svc.ServerCtx) (*Platform, error) {
	return &Platform{
		config:    config,
		router:    router,
		serverCtx: serverCtx,
	}, nil
}

// Start runs the HTTP server. Blocks until the listener fails.
func (p *Platform) Start() error {
	xzap.WithContext(context.Background()).Info("agentdash api run",
		zap.String("port", p.config.Api.Port))
	return p.router.Run(p.config.Api.Port)
}
