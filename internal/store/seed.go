package store

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt" // Password hashing

	"creditline/internal/domain"
)

// DemoPassword is the login password of the seeded demo users
const DemoPassword = "password123"

// DemoApplications returns the sample applications shown on a fresh dashboard
func DemoApplications() []domain.Application {
	ts := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	return []domain.Application{
		{
			ID: "1234-abcd-5678-efgh", FirstName: "John", LastName: "Doe",
			Email: "john.doe@example.com", Phone: "(555) 123-4567",
			Address: "123 Main Street", City: "Austin", State: "TX", ZipCode: "78701",
			EmploymentStatus: "Full-Time", AnnualIncome: 85000,
			LoanPurpose: "Home Improvement", LoanAmount: 25000,
			Status:      domain.StatusPending,
			MLDecision:  &domain.MLDecision{Status: domain.StatusApproved, InterestRate: 10.75, CreditLimit: 17000},
			CreditCheck: &domain.CreditCheck{CreditScore: 720, Inquiries: 2, Utilization: 25},
			CreatedAt:   ts("2023-05-15T10:30:00Z"), UpdatedAt: ts("2023-05-15T10:30:00Z"),
		},
		{
			ID: "5678-ijkl-9012-mnop", FirstName: "Jane", LastName: "Smith",
			Email: "jane.smith@example.com", Phone: "(555) 987-6543",
			Address: "456 Oak Avenue", City: "Seattle", State: "WA", ZipCode: "98101",
			EmploymentStatus: "Part-Time", AnnualIncome: 45000,
			LoanPurpose: "Debt Consolidation", LoanAmount: 15000,
			Status:        domain.StatusApproved,
			MLDecision:    &domain.MLDecision{Status: domain.StatusApproved, InterestRate: 14.25, CreditLimit: 6750},
			CreditCheck:   &domain.CreditCheck{CreditScore: 680, Inquiries: 3, Utilization: 40},
			AccountNumber: "****-****-****-1234",
			CreatedAt:     ts("2023-05-10T14:45:00Z"), UpdatedAt: ts("2023-05-12T09:15:00Z"),
		},
		{
			ID: "9012-qrst-3456-uvwx", FirstName: "Robert", LastName: "Johnson",
			Email: "robert.johnson@example.com", Phone: "(555) 555-5555",
			Address: "789 Pine Street", City: "Chicago", State: "IL", ZipCode: "60601",
			EmploymentStatus: "Self-Employed", AnnualIncome: 110000,
			LoanPurpose: "Business Expansion", LoanAmount: 50000,
			Status:         domain.StatusRejected,
			MLDecision:     &domain.MLDecision{Status: domain.StatusRejected},
			CreditCheck:    &domain.CreditCheck{CreditScore: 620, Inquiries: 7, Utilization: 75},
			DecisionReason: "Credit score or income below required threshold",
			CreatedAt:      ts("2023-05-05T09:15:00Z"), UpdatedAt: ts("2023-05-16T14:10:00Z"),
		},
	}
}

// DemoUsers returns one reviewer and one applicant, both with DemoPassword
func DemoUsers() ([]domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return []domain.User{
		{ID: "usr_123", Email: "employee@example.com", PasswordHash: string(hash), FirstName: "Admin", LastName: "User", Role: domain.RoleEmployee, CreatedAt: now},
		{ID: "usr_456", Email: "john.doe@example.com", PasswordHash: string(hash), FirstName: "John", LastName: "Doe", Role: domain.RoleApplicant, CreatedAt: now},
	}, nil
}

// Seed loads the demo records. Records that already exist are left alone.
func Seed(ctx context.Context, repo Repository) error {
	for _, app := range DemoApplications() {
		if err := repo.CreateApplication(ctx, app); err != nil && !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	users, err := DemoUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := repo.CreateUser(ctx, u); err != nil && !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	return nil
}
