package domain

import "time"

// Application Model
type Application struct {
	ID               string        `json:"id" gorm:"primaryKey;size:36"`                  // UUID, immutable
	FirstName        string        `json:"firstName" gorm:"not null"`                     // Applicant first name
	LastName         string        `json:"lastName" gorm:"not null"`                      // Applicant last name
	Email            string        `json:"email" gorm:"index;not null"`                   // Applicant email, case-folded
	Phone            string        `json:"phone"`                                         // Contact phone
	DOB              string        `json:"dob,omitempty"`                                 // Date of birth, YYYY-MM-DD
	Address          string        `json:"address"`                                       // Street address
	City             string        `json:"city"`                                          // City
	State            string        `json:"state"`                                         // State code
	ZipCode          string        `json:"zipCode"`                                       // Postal code
	EmploymentStatus string        `json:"employmentStatus"`                              // Employment status
	AnnualIncome     float64       `json:"annualIncome" gorm:"not null"`                  // Declared annual income
	LoanPurpose      string        `json:"loanPurpose"`                                   // Purpose of the credit line
	LoanAmount       float64       `json:"loanAmount" gorm:"not null"`                    // Requested amount
	Status           Status        `json:"status" gorm:"type:varchar(20);index;not null"` // Lifecycle status
	MLDecision       *MLDecision   `json:"mlDecision,omitempty" gorm:"serializer:json"`   // Synthetic decision
	CreditCheck      *CreditCheck  `json:"creditCheck,omitempty" gorm:"serializer:json"`  // Synthetic bureau profile
	Verification     *Verification `json:"verification,omitempty" gorm:"serializer:json"` // Consent flags
	AccountNumber    string        `json:"accountNumber,omitempty"`                       // Masked number, set on approval
	DecisionReason   string        `json:"decisionReason,omitempty"`                      // Set on rejection by evaluation
	CreatedAt        time.Time     `json:"createdAt" gorm:"autoCreateTime:false"`         // Submission time
	UpdatedAt        time.Time     `json:"updatedAt" gorm:"autoUpdateTime:false"`         // Last mutation time
	Seq              uint64        `json:"-" gorm:"autoIncrement;uniqueIndex"`            // Insertion order, assigned by MySQL
}

// MLDecision is the synthetic verdict attached at submission
type MLDecision struct {
	Status       Status  `json:"status"`       // approved or rejected
	InterestRate float64 `json:"interestRate"` // Percent APR, two decimals
	CreditLimit  float64 `json:"creditLimit"`  // Whole currency units
}

// CreditCheck is the synthetic credit bureau profile
type CreditCheck struct {
	CreditScore int `json:"creditScore"` // 580..879
	Inquiries   int `json:"inquiries"`   // 0..7
	Utilization int `json:"utilization"` // Percent, 0..89
}

// Verification holds the consent flags captured by the form
type Verification struct {
	ConsentToCheck bool `json:"consentToCheck"`
	TermsAgreed    bool `json:"termsAgreed"`
}

// Clone returns a deep copy so stored records are never aliased by callers
func (a Application) Clone() Application {
	if a.MLDecision != nil {
		d := *a.MLDecision
		a.MLDecision = &d
	}
	if a.CreditCheck != nil {
		c := *a.CreditCheck
		a.CreditCheck = &c
	}
	if a.Verification != nil {
		v := *a.Verification
		a.Verification = &v
	}
	return a
}

// CreditResult is the outcome of an explicit evaluation
type CreditResult struct {
	Approved      bool    `json:"approved"`
	CreditLimit   float64 `json:"creditLimit,omitempty"`
	InterestRate  float64 `json:"interestRate,omitempty"`
	AccountNumber string  `json:"accountNumber,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// StatusReport is what applicants poll to follow their application
type StatusReport struct {
	ApplicationID string        `json:"applicationId"`
	Status        Status        `json:"status"`
	Message       string        `json:"message"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Result        *CreditResult `json:"result,omitempty"` // Present only when approved
}
