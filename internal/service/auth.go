package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"creditline/internal/domain"
	"creditline/internal/metrics"
	"creditline/internal/store"
	"creditline/internal/utils"
)

const minPasswordLength = 8

// RegisterInput is a validated registration request
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// Session is a user with a freshly issued token. It serialises flat, the
// user's fields next to the token.
type Session struct {
	domain.User
	Token string `json:"token"`
}

// AuthService registers users and verifies credentials
type AuthService struct {
	repo                store.Repository
	secret              string
	bcryptCost          int
	allowEmployeeSignup bool
	now                 func() time.Time
}

// AuthOption customises an AuthService
type AuthOption func(*AuthService)

// WithBcryptCost overrides the hashing cost
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.bcryptCost = cost }
}

// WithEmployeeSignup lets the employee role be self-registered
func WithEmployeeSignup(allow bool) AuthOption {
	return func(s *AuthService) { s.allowEmployeeSignup = allow }
}

// NewAuthService wires the service with the token signing secret
func NewAuthService(repo store.Repository, secret string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		repo:       repo,
		secret:     secret,
		bcryptCost: bcrypt.DefaultCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and signs the user in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return Session{}, domain.NewValidationError("email is required")
	}
	if len(in.Password) < minPasswordLength {
		return Session{}, domain.NewValidationError("Password must be at least 8 characters")
	}
	role := in.Role
	if role == "" {
		role = domain.RoleApplicant
	}
	if !role.Valid() {
		return Session{}, domain.NewValidationError("role must be applicant or employee")
	}
	if role == domain.RoleEmployee && !s.allowEmployeeSignup {
		return Session{}, &domain.Error{Kind: domain.KindForbidden, Message: "Employee accounts cannot be self-registered"}
	}

	// Cheap pre-check; the store enforces uniqueness again on insert
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return Session{}, domain.NewConflictError("Email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return Session{}, err
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		CreatedAt:    s.now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return Session{}, err
	}

	metrics.UsersRegistered.WithLabelValues(string(role)).Inc()
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}).Info("User registered")
	return s.issue(user)
}

// Login verifies credentials. Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return Session{}, invalidCredentials()
	} else if err != nil {
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return Session{}, invalidCredentials()
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return s.issue(user)
}

func (s *AuthService) issue(user domain.User) (Session, error) {
	token, err := utils.GenerateJWT(user, s.secret, s.now())
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token}, nil
}

func invalidCredentials() error {
	return &domain.Error{Kind: domain.KindUnauthorized, Message: "Invalid credentials"}
}
