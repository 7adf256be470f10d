package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(studentHandler *StudentHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Student Enrollment Microservice"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.POST("/enroll", studentHandler.Enroll)
	r.GET("/students/:id", studentHandler.GetStudent)
	r.GET("/students", studentHandler.ListStudents)
	r.GET("/validate/:id", studentHandler.ValidateStudent)

	return r
}
