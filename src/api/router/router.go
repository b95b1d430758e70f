package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Pratik-jagdale/AgentDashBackend/src/api/middleware"
	v1 "github.com/Pratik-jagdale/AgentDashBackend/src/api/v1"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	gin.ForceConsoleColor()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RecoverMiddleware())
	r.Use(middleware.RLog())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-CSRF-Token", "Authorization", "AccessToken", "Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	loadV1(r, svcCtx)

	return r
}

func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	api := r.Group("/api/v1")

	session := api.Group("/session")
	{
		session.GET("", v1.GetSessionHandler(svcCtx))
		session.POST("/login", v1.LoginHandler(svcCtx))
		session.POST("/logout", v1.LogoutHandler(svcCtx))
		session.POST("/sign", v1.SignMessageHandler(svcCtx))
		session.GET("/balance", v1.GetBalanceHandler(svcCtx))
	}

	collections := api.Group("/collections")
	{
		collections.GET("", v1.GetCollectionsHandler(svcCtx))
		collections.POST("/refresh", v1.RefreshCollectionsHandler(svcCtx))
		collections.POST("/mint", v1.MintHandler(svcCtx))
	}

	servers := api.Group("/servers")
	{
		servers.GET("", v1.ListServersHandler(svcCtx))
		servers.GET("/audit", v1.RegistrationAuditHandler(svcCtx))
		servers.POST("", v1.RegisterServerHandler(svcCtx))
		servers.POST("/:serverId", v1.UpdateServerHandler(svcCtx))
		servers.DELETE("/:serverId", v1.DeleteServerHandler(svcCtx))
	}
}
