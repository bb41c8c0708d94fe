package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"whisperlink.backend/internal/interfaces/http/handlers"
	"whisperlink.backend/internal/interfaces/http/middleware"
	"whisperlink.backend/pkg/jwt"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	messageHandler *handlers.MessageHandler
	aiHandler      *handlers.AIHandler
	jwtService     *jwt.Service
	revocation     middleware.RevocationChecker
	secureCookies  bool
}

func buildRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.RouteGuard(d.jwtService, d.revocation, d.secureCookies))

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAPIRoutes(r, d)
	return r
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	requireAuth := middleware.CookieAuth(d.jwtService, d.revocation)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/verify", d.authHandler.Verify)
			auth.POST("/sign-in", d.authHandler.SignIn)
			auth.POST("/sign-out", d.authHandler.SignOut)
			auth.GET("/check-username", d.authHandler.CheckUsername)
		}

		user := api.Group("/user")
		user.Use(requireAuth)
		{
			user.GET("", d.userHandler.Me)
			user.POST("/acceptance", d.userHandler.ToggleAcceptance)
		}

		messages := api.Group("/messages")
		{
			// Sending stays anonymous; reading and deleting require a session.
			messages.POST("/send", d.messageHandler.Send)
			messages.GET("", requireAuth, d.messageHandler.List)
			messages.DELETE("/:id", requireAuth, d.messageHandler.Delete)
		}

		assistant := api.Group("/ai")
		{
			assistant.POST("/enhance", d.aiHandler.Enhance)
			assistant.POST("/generate", d.aiHandler.Generate)
			assistant.POST("/sentiment", d.aiHandler.Sentiment)
		}
	}
}
