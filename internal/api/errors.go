package api

import (
	"errors"   // Binding error inspection
	"net/http" // HTTP status codes
	"strings"  // Field list joining

	"creditline/internal/domain" // Error kinds

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Binding errors
	"github.com/sirupsen/logrus"             // Logging library
)

// statusFor maps a domain error kind onto an HTTP status code
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindConflict, domain.KindInvalidTransition:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}. Unclassified errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	code := statusFor(domain.KindOf(err))
	if code == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err.Error(),
		}).Error("Request failed")
		c.JSON(code, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// bindingError turns a ShouldBindJSON failure into a validation error with a
// readable message
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("Invalid request")
	}
	var missing []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "appstatus":
			return domain.NewValidationError("status must be one of " + joinStatuses())
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	fe := verrs[0]
	return domain.NewValidationError(fe.Field() + " is invalid")
}

func joinStatuses() string {
	all := domain.AllStatuses()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
