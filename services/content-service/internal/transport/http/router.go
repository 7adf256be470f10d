package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(contentHandler *ContentHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Content Delivery Microservice"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.POST("/content", contentHandler.CreateContent)
	r.GET("/content/:id", contentHandler.GetContent)
	r.PUT("/content/:id", contentHandler.UpdateContent)
	r.DELETE("/content/:id", contentHandler.DeleteContent)
	r.GET("/course/:course_id/content", contentHandler.ListCourseContent)
	r.GET("/get-content", contentHandler.GetStudentContent)

	return r
}
