package handlers

import (
	"net/http"
	"time"

	"eduplatform/services/password-service/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(passwordHandler *PasswordHandler, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Password Microservice"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api/password")
	{
		api.POST("/change-password", limiter.Limit("change_password", 5, 5*time.Minute), passwordHandler.ChangePassword)
	}

	return r
}
