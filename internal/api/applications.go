package api

import (
	"net/http" // HTTP status codes

	"creditline/internal/domain"  // Domain models
	"creditline/internal/service" // Application lifecycle

	"github.com/gin-gonic/gin" // Gin web framework
)

// ApplicationRequest is the submission body
type ApplicationRequest struct {
	FirstName        string               `json:"firstName" binding:"required"`         // Applicant first name
	LastName         string               `json:"lastName" binding:"required"`          // Applicant last name
	Email            string               `json:"email" binding:"required,email"`       // Contact email, keys the applicant
	Phone            string               `json:"phone"`                                // Contact phone
	DOB              string               `json:"dob"`                                  // Date of birth, optional
	Address          string               `json:"address"`                              // Street address
	City             string               `json:"city"`                                 // City
	State            string               `json:"state"`                                // State
	ZipCode          string               `json:"zipCode"`                              // Postal code
	EmploymentStatus string               `json:"employmentStatus"`                     // Employment category
	AnnualIncome     float64              `json:"annualIncome" binding:"required,gt=0"` // Declared yearly income
	LoanPurpose      string               `json:"loanPurpose"`                          // Purpose of the credit line
	LoanAmount       float64              `json:"loanAmount" binding:"required,gt=0"`   // Requested amount
	Verification     *domain.Verification `json:"verification"`                         // Consent flags
}

// StatusUpdateRequest is the body of a reviewer status change
type StatusUpdateRequest struct {
	Status domain.Status `json:"status" binding:"required,appstatus"` // Target status
}

func (r ApplicationRequest) input() service.ApplicationInput {
	return service.ApplicationInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		Phone:            r.Phone,
		DOB:              r.DOB,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		ZipCode:          r.ZipCode,
		EmploymentStatus: r.EmploymentStatus,
		AnnualIncome:     r.AnnualIncome,
		LoanPurpose:      r.LoanPurpose,
		LoanAmount:       r.LoanAmount,
		Verification:     r.Verification,
	}
}

// ListApplicationsHandler returns every application, optionally filtered by ?status=
func ListApplicationsHandler(svc *service.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter domain.Status
		if raw := c.Query("status"); raw != "" {
			s, err := domain.ParseStatus(raw) // Reject unknown statuses up front
			if err != nil {
				respondError(c, err)
				return
			}
			filter = s
		}
		apps, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, apps)
	}
}

// GetApplicationHandler returns one application by id
func GetApplicationHandler(svc *service.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		app, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err) // 404 when unknown
			return
		}
		c.JSON(http.StatusOK, app)
	}
}

// ListApplicationsByEmailHandler returns an applicant's applications
func ListApplicationsByEmailHandler(svc *service.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apps, err := svc.ListByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, apps)
	}
}

// CreateApplicationHandler accepts a new submission
func CreateApplicationHandler(svc *service.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ApplicationRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}
		app, err := svc.Create(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, app)
	}
}

// UpdateStatusHandler moves an application to a new status
func UpdateStatusHandler(svc *service.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StatusUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}
		app, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, err) // 404 unknown id, 409 illegal edge
			return
		}
		c.JSON(http.StatusOK, app)
	}
}
