package api

import (
	"net/http" // HTTP status codes

	"creditline/internal/domain"  // Role type
	"creditline/internal/service" // Registration and login

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest is the registration body
type RegisterRequest struct {
	Email     string      `json:"email" binding:"required,email"` // Login identity
	Password  string      `json:"password" binding:"required"`    // Plain text, hashed before storage
	FirstName string      `json:"firstName"`                      // First name
	LastName  string      `json:"lastName"`                       // Last name
	Role      domain.Role `json:"role"`                           // Defaults to applicant
}

// LoginRequest is the login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Login identity
	Password string `json:"password" binding:"required"` // Plain text password
}

// RegisterHandler creates an account and returns it with a session token
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}
		session, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      req.Role,
		})
		if err != nil {
			respondError(c, err) // 409 on duplicate email
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, bindingError(err))
			return
		}
		session, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // 401 on bad credentials
			return
		}
		c.JSON(http.StatusOK, session)
	}
}
