// Package decision turns declared income, requested amount and a credit
// profile into an approval verdict with a rate and a limit.
package decision

import (
	"fmt"

	"github.com/shopspring/decimal"

	"creditline/internal/domain"
)

// Tier identifies which approval band a verdict fell into
type Tier string

const (
	TierA    Tier = "A"
	TierB    Tier = "B"
	TierNone Tier = ""
)

// RejectionReason is reported for every declined application
const RejectionReason = "Credit score or income below required threshold"

var (
	tierAScore  = 700
	tierAIncome = decimal.NewFromInt(50000)
	tierBScore  = 630
	tierBIncome = decimal.NewFromInt(30000)

	tierABaseRate = decimal.RequireFromString("9.99")
	tierASpread   = 2.0
	tierBBaseRate = decimal.RequireFromString("12.99")
	tierBSpread   = 3.0
)

// Verdict is the engine's answer for one application
type Verdict struct {
	Tier         Tier
	Approved     bool
	CreditLimit  float64 // Whole currency units, zero on rejection
	InterestRate float64 // Percent, two decimals, zero on rejection
	Reason       string  // Set on rejection
}

// Status is the lifecycle state the verdict leads to
func (v Verdict) Status() domain.Status {
	if v.Approved {
		return domain.StatusApproved
	}
	return domain.StatusRejected
}

// MLDecision converts the verdict into the record attached to an application
func (v Verdict) MLDecision() domain.MLDecision {
	return domain.MLDecision{
		Status:       v.Status(),
		InterestRate: v.InterestRate,
		CreditLimit:  v.CreditLimit,
	}
}

// Engine applies the tiered threshold rules
type Engine struct {
	profiles ProfileGenerator
	rnd      Rand
}

// NewEngine wires a profile generator and a random source. Nil arguments fall
// back to random profiles and the global source.
func NewEngine(profiles ProfileGenerator, rnd Rand) *Engine {
	if rnd == nil {
		rnd = globalRand{}
	}
	if profiles == nil {
		profiles = NewRandomProfiles(rnd)
	}
	return &Engine{profiles: profiles, rnd: rnd}
}

// Assess draws a fresh profile and decides against it
func (e *Engine) Assess(income, requested float64) (domain.CreditCheck, Verdict) {
	check := e.profiles.Generate()
	return check, e.Decide(income, requested, check)
}

// Decide evaluates the rules against a known profile
func (e *Engine) Decide(income, requested float64, check domain.CreditCheck) Verdict {
	inc := decimal.NewFromFloat(income)
	req := decimal.NewFromFloat(requested)

	switch {
	case check.CreditScore >= tierAScore && inc.GreaterThanOrEqual(tierAIncome):
		limit := decimal.Min(req.Mul(decimal.RequireFromString("1.5")), inc.Mul(decimal.RequireFromString("0.2")))
		return Verdict{
			Tier:         TierA,
			Approved:     true,
			CreditLimit:  limit.RoundFloor(0).InexactFloat64(),
			InterestRate: e.rate(tierABaseRate, tierASpread),
		}
	case check.CreditScore >= tierBScore && inc.GreaterThanOrEqual(tierBIncome):
		limit := decimal.Min(req, inc.Mul(decimal.RequireFromString("0.15")))
		return Verdict{
			Tier:         TierB,
			Approved:     true,
			CreditLimit:  limit.RoundFloor(0).InexactFloat64(),
			InterestRate: e.rate(tierBBaseRate, tierBSpread),
		}
	default:
		return Verdict{Tier: TierNone, Reason: RejectionReason}
	}
}

// rate is base plus a uniform draw in [0, spread], rounded to cents
func (e *Engine) rate(base decimal.Decimal, spread float64) float64 {
	return base.Add(decimal.NewFromFloat(e.rnd.Float64() * spread)).Round(2).InexactFloat64()
}

// AccountNumber synthesises a masked account number with a 4-digit suffix
func (e *Engine) AccountNumber() string {
	return fmt.Sprintf("****-****-****-%d", 1000+e.rnd.IntN(9000))
}
