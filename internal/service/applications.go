// Package service holds the components that own application and user state.
// Every mutation goes through them so transition rules are enforced in one
// place.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"creditline/internal/decision"
	"creditline/internal/domain"
	"creditline/internal/metrics"
	"creditline/internal/store"
	"creditline/internal/utils"
)

// ApplicationInput is a validated submission
type ApplicationInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	DOB              string
	Address          string
	City             string
	State            string
	ZipCode          string
	EmploymentStatus string
	AnnualIncome     float64
	LoanPurpose      string
	LoanAmount       float64
	Verification     *domain.Verification
}

func (in ApplicationInput) validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"email", in.Email},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if in.AnnualIncome <= 0 {
		return domain.NewValidationError("annualIncome must be greater than zero")
	}
	if in.LoanAmount <= 0 {
		return domain.NewValidationError("loanAmount must be greater than zero")
	}
	return nil
}

// ApplicationService owns the application lifecycle
type ApplicationService struct {
	mu     sync.RWMutex // Writers serialise; cache fills hold the read lock
	repo   store.Repository
	engine *decision.Engine
	cache  *utils.Cache
	now    func() time.Time
	newID  func() string
}

// ApplicationOption customises an ApplicationService
type ApplicationOption func(*ApplicationService)

// WithClock overrides the time source
func WithClock(now func() time.Time) ApplicationOption {
	return func(s *ApplicationService) { s.now = now }
}

// WithIDGenerator overrides application id generation
func WithIDGenerator(newID func() string) ApplicationOption {
	return func(s *ApplicationService) { s.newID = newID }
}

// NewApplicationService wires the service. cache may be nil.
func NewApplicationService(repo store.Repository, engine *decision.Engine, cache *utils.Cache, opts ...ApplicationOption) *ApplicationService {
	s := &ApplicationService{
		repo:   repo,
		engine: engine,
		cache:  cache,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create records a new pending application with its synthetic profile and
// decision attached
func (s *ApplicationService) Create(ctx context.Context, in ApplicationInput) (domain.Application, error) {
	if err := in.validate(); err != nil {
		return domain.Application{}, err
	}

	check, verdict := s.engine.Assess(in.AnnualIncome, in.LoanAmount)
	mlDecision := verdict.MLDecision()
	now := s.now()

	app := domain.Application{
		ID:               s.newID(),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:            in.Phone,
		DOB:              in.DOB,
		Address:          in.Address,
		City:             in.City,
		State:            in.State,
		ZipCode:          in.ZipCode,
		EmploymentStatus: in.EmploymentStatus,
		AnnualIncome:     in.AnnualIncome,
		LoanPurpose:      in.LoanPurpose,
		LoanAmount:       in.LoanAmount,
		Status:           domain.StatusPending,
		MLDecision:       &mlDecision,
		CreditCheck:      &check,
		Verification:     in.Verification,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	s.mu.Lock()
	err := s.repo.CreateApplication(ctx, app)
	s.mu.Unlock()
	if err != nil {
		return domain.Application{}, err
	}

	metrics.ApplicationsSubmitted.Inc()
	metrics.Decisions.WithLabelValues(tierLabel(verdict.Tier), "submission").Inc()
	logrus.WithFields(logrus.Fields{
		"application_id": app.ID,
		"email":          app.Email,
		"loan_amount":    app.LoanAmount,
		"credit_score":   check.CreditScore,
		"ml_decision":    mlDecision.Status,
	}).Info("Application submitted")
	return app, nil
}

// List returns every application in insertion order, optionally only those
// in the given status
func (s *ApplicationService) List(ctx context.Context, filter domain.Status) ([]domain.Application, error) {
	apps, err := s.repo.ListApplications(ctx)
	if err != nil || filter == "" {
		return apps, err
	}
	out := make([]domain.Application, 0, len(apps))
	for _, app := range apps {
		if app.Status == filter {
			out = append(out, app)
		}
	}
	return out, nil
}

// ListByEmail returns the applications submitted under an email address
func (s *ApplicationService) ListByEmail(ctx context.Context, email string) ([]domain.Application, error) {
	return s.repo.ListApplicationsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Get returns a single application, served from cache when possible
func (s *ApplicationService) Get(ctx context.Context, id string) (domain.Application, error) {
	var app domain.Application
	if found, err := s.cache.Get(ctx, appKey(id), &app); err == nil && found {
		return app, nil
	} else if err != nil {
		logrus.WithFields(logrus.Fields{"application_id": id, "error": err.Error()}).Warn("Application cache read failed")
	}

	// A mutation cannot invalidate between the store read and the cache fill
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}
	s.cacheSet(ctx, appKey(id), app)
	return app, nil
}

// UpdateStatus moves an application along a legal edge of the lifecycle
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, next domain.Status) (domain.Application, error) {
	if !next.Valid() {
		return domain.Application{}, domain.NewValidationError(fmt.Sprintf("unknown status %q", next))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}
	prev := app.Status
	if !prev.CanTransitionTo(next) {
		metrics.RejectedTransitions.WithLabelValues(string(prev), string(next)).Inc()
		return domain.Application{}, domain.NewInvalidTransitionError(prev, next)
	}

	app.Status = next
	app.UpdatedAt = s.stamp(app.UpdatedAt)
	if err := s.repo.SaveApplication(ctx, app); err != nil {
		return domain.Application{}, err
	}
	s.invalidate(ctx, id)

	metrics.StatusTransitions.WithLabelValues(string(prev), string(next)).Inc()
	logrus.WithFields(logrus.Fields{
		"application_id": id,
		"from":           prev,
		"to":             next,
	}).Info("Application status changed")
	return app, nil
}

// Evaluate applies the credit decision to a non-terminal application. The
// stored profile and decision are reused; they are only generated here for
// records that were created without them.
func (s *ApplicationService) Evaluate(ctx context.Context, id string) (domain.CreditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return domain.CreditResult{}, err
	}
	if app.Status.Terminal() {
		metrics.RejectedTransitions.WithLabelValues(string(app.Status), "evaluated").Inc()
		return domain.CreditResult{}, &domain.Error{
			Kind:    domain.KindInvalidTransition,
			Message: fmt.Sprintf("application already %s", app.Status),
		}
	}

	if app.CreditCheck == nil {
		c, _ := s.engine.Assess(app.AnnualIncome, app.LoanAmount)
		app.CreditCheck = &c
	}
	verdict := s.engine.Decide(app.AnnualIncome, app.LoanAmount, *app.CreditCheck)
	if app.MLDecision == nil {
		d := verdict.MLDecision()
		app.MLDecision = &d
	}

	decided := *app.MLDecision
	result := domain.CreditResult{Approved: decided.Status == domain.StatusApproved}
	if result.Approved {
		app.AccountNumber = s.engine.AccountNumber()
		result.CreditLimit = decided.CreditLimit
		result.InterestRate = decided.InterestRate
		result.AccountNumber = app.AccountNumber
	} else {
		app.DecisionReason = decision.RejectionReason
		result.Reason = decision.RejectionReason
	}

	prev := app.Status
	app.Status = decided.Status
	app.UpdatedAt = s.stamp(app.UpdatedAt)
	if err := s.repo.SaveApplication(ctx, app); err != nil {
		return domain.CreditResult{}, err
	}
	s.invalidate(ctx, id)

	metrics.Decisions.WithLabelValues(tierLabel(verdict.Tier), "evaluation").Inc()
	metrics.StatusTransitions.WithLabelValues(string(prev), string(app.Status)).Inc()
	logrus.WithFields(logrus.Fields{
		"application_id": id,
		"approved":       result.Approved,
		"credit_limit":   result.CreditLimit,
		"interest_rate":  result.InterestRate,
	}).Info("Application evaluated")
	return result, nil
}

// CheckStatus reports an application's status with the applicant message
// and, once approved, the granted terms
func (s *ApplicationService) CheckStatus(ctx context.Context, id string) (domain.StatusReport, error) {
	var report domain.StatusReport
	if found, err := s.cache.Get(ctx, statusKey(id), &report); err == nil && found {
		return report, nil
	} else if err != nil {
		logrus.WithFields(logrus.Fields{"application_id": id, "error": err.Error()}).Warn("Status cache read failed")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return domain.StatusReport{}, err
	}
	report = domain.StatusReport{
		ApplicationID: app.ID,
		Status:        app.Status,
		Message:       domain.StatusMessage(app.Status),
		UpdatedAt:     app.UpdatedAt,
	}
	if app.Status == domain.StatusApproved {
		report.Result = &domain.CreditResult{Approved: true, AccountNumber: app.AccountNumber}
		if app.MLDecision != nil {
			report.Result.CreditLimit = app.MLDecision.CreditLimit
			report.Result.InterestRate = app.MLDecision.InterestRate
		}
	}
	s.cacheSet(ctx, statusKey(id), report)
	return report, nil
}

// stamp returns the current time, never earlier than prev
func (s *ApplicationService) stamp(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func (s *ApplicationService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
}

func (s *ApplicationService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, appKey(id), statusKey(id)); err != nil {
		logrus.WithFields(logrus.Fields{"application_id": id, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}

func appKey(id string) string    { return "app:" + id }
func statusKey(id string) string { return "status:" + id }

func tierLabel(t decision.Tier) string {
	if t == decision.TierNone {
		return "none"
	}
	return string(t)
}
