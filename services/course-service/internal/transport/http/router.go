package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(courseHandler *CourseHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Course Registration Microservice"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.POST("/courses", courseHandler.CreateCourse)
	r.GET("/courses", courseHandler.ListCourses)
	r.GET("/courses/:id", courseHandler.GetCourse)
	r.POST("/register", courseHandler.Register)
	r.GET("/registrations/student/:id", courseHandler.ListStudentRegistrations)
	r.GET("/registrations/course/:id", courseHandler.ListCourseRegistrations)

	return r
}
