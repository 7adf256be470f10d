package handlers

import (
	"net/http"
	"time"

	"eduplatform/services/auth-service/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *AuthHandler, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Auth Microservice"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/signup/student", authHandler.SignupStudent)
		auth.POST("/signup/parent", authHandler.SignupParent)
		auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
	}

	return r
}
