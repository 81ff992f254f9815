package domain

import "time"

// Role distinguishes applicants from reviewing employees
type Role string

const (
	RoleApplicant Role = "applicant" // Submits applications
	RoleEmployee  Role = "employee"  // Reviews applications
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleEmployee
}

// User Model
type User struct {
	ID           string    `json:"userId" gorm:"primaryKey;size:36"`                          // UUID
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`                // Unique, case-folded
	PasswordHash string    `json:"-" gorm:"not null"`                                         // bcrypt hash, never serialised
	FirstName    string    `json:"firstName"`                                                 // First name
	LastName     string    `json:"lastName"`                                                  // Last name
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'applicant'"` // applicant or employee
	CreatedAt    time.Time `json:"createdAt"`                                                 // Registration time
}
