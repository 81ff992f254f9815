package api

import (
	"net/http" // HTTP status codes

	"creditline/internal/service" // Application lifecycle

	"github.com/gin-gonic/gin" // Gin web framework
)

// EvaluateHandler runs the credit decision for a pending or processing application
func EvaluateHandler(svc *service.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.Evaluate(c.Request.Context(), c.Param("applicationId"))
		if err != nil {
			respondError(c, err) // 404 unknown id, 409 already decided
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CheckStatusHandler reports an application's status to the applicant
func CheckStatusHandler(svc *service.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.CheckStatus(c.Request.Context(), c.Param("applicationId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
