package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/curricula/internal/app/controllers"
	"github.com/yigit/curricula/internal/middleware"
	"github.com/yigit/curricula/internal/pkg/auth"
)

// Controllers groups the handlers the router wires up
type Controllers struct {
	Auth      *controllers.AuthController
	Programme *controllers.ProgrammeController
	Course    *controllers.CourseController
	Graph     *controllers.GraphController
	Health    *controllers.HealthController
	Events    *controllers.EventsController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/auth/login", c.Auth.Login)
	v1.GET("/health", c.Health.Health)

	programmes := v1.Group("/programmes")
	{
		programmes.GET("", c.Programme.GetAllProgrammes)
		programmes.GET("/:id", c.Programme.GetProgrammeByID)
		programmes.GET("/:id/courses", c.Course.GetProgrammeCourses)
		programmes.GET("/:id/graph", c.Graph.GetProgrammeGraph)
		programmes.GET("/:id/graph.png", c.Graph.GetProgrammeGraphImage)
		programmes.GET("/:id/events", c.Events.Subscribe)
		// Dry run never writes, so editors may call it before logging in
		programmes.POST("/:id/courses/validate", c.Course.ValidateCourse)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("/:id", c.Course.GetCourseByID)
	}

	// --- Administrator routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(auth.RoleAdmin))
	{
		admin.POST("/programmes", c.Programme.CreateProgramme)
		admin.PUT("/programmes/:id", c.Programme.UpdateProgramme)
		admin.DELETE("/programmes/:id", c.Programme.DeleteProgramme)

		admin.POST("/programmes/:id/courses", c.Course.CreateCourse)
		admin.PUT("/courses/:id", c.Course.UpdateCourse)
		admin.DELETE("/courses/:id", c.Course.DeleteCourse)
	}
}

// SetupMetrics exposes the Prometheus registry
func SetupMetrics(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
