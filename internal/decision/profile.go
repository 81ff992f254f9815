package decision

import (
	"math/rand/v2"

	"creditline/internal/domain"
)

// Rand is the randomness the engine draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// globalRand uses the concurrency-safe top-level math/rand/v2 source
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// ProfileGenerator produces the credit bureau profile for an applicant.
// A real bureau client can replace RandomProfiles without touching the
// lifecycle code.
type ProfileGenerator interface {
	Generate() domain.CreditCheck
}

// RandomProfiles synthesises uniformly distributed profiles
type RandomProfiles struct {
	rnd Rand
}

// NewRandomProfiles returns a generator over rnd, or the global source when nil
func NewRandomProfiles(rnd Rand) *RandomProfiles {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &RandomProfiles{rnd: rnd}
}

// Generate draws score in [580,880), inquiries in [0,8), utilization in [0,90)
func (g *RandomProfiles) Generate() domain.CreditCheck {
	return domain.CreditCheck{
		CreditScore: 580 + g.rnd.IntN(300),
		Inquiries:   g.rnd.IntN(8),
		Utilization: g.rnd.IntN(90),
	}
}

// FixedProfile always returns the same profile
type FixedProfile struct {
	Check domain.CreditCheck
}

func (f FixedProfile) Generate() domain.CreditCheck { return f.Check }
