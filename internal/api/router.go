package api

import (
	"fmt"      // Error wrapping
	"net/http" // HTTP status codes

	"creditline/internal/middleware" // Auth and metrics middleware
	"creditline/internal/service"    // Services behind the handlers

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics exposition
)

// Services are the dependencies the handlers need
type Services struct {
	Applications *service.ApplicationService
	Auth         *service.AuthService
	JWTSecret    string
}

// SetupRouter registers every route on a new gin engine. It fails when the
// custom binding rules cannot be installed.
func SetupRouter(s Services) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	r := gin.Default() // Logger and recovery
	r.Use(middleware.MetricsMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Credit Application API is running")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apps := r.Group("/api/applications")
	apps.GET("", ListApplicationsHandler(s.Applications))                    // List, optional ?status=
	apps.GET("/:id", GetApplicationHandler(s.Applications))                  // Single application
	apps.GET("/user/:email", ListApplicationsByEmailHandler(s.Applications)) // Applicant history
	apps.POST("", CreateApplicationHandler(s.Applications))                  // Submit

	credit := r.Group("/api/credit")
	credit.GET("/check-status/:applicationId", CheckStatusHandler(s.Applications)) // Applicant status view

	// Reviewer routes (protected, employee only)
	reviewer := r.Group("/api")
	reviewer.Use(middleware.JWTAuthMiddleware(s.JWTSecret), middleware.EmployeeOnlyMiddleware())
	reviewer.PUT("/applications/:id/status", UpdateStatusHandler(s.Applications))     // Status change
	reviewer.POST("/credit/evaluate/:applicationId", EvaluateHandler(s.Applications)) // Run the decision

	users := r.Group("/api/users")
	users.POST("/register", RegisterHandler(s.Auth)) // Registration endpoint
	users.POST("/login", LoginHandler(s.Auth))       // Login endpoint

	return r, nil
}
