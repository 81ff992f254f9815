package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"creditline/internal/decision"
	"creditline/internal/domain"
	"creditline/internal/store"
	"creditline/internal/utils"
)

// stubRand returns fixed draws
type stubRand struct {
	f float64
	n int
}

func (s stubRand) Float64() float64 { return s.f }
func (s stubRand) IntN(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

// fakeClock advances one second on every reading
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func engineWithScore(score int) *decision.Engine {
	profile := decision.FixedProfile{Check: domain.CreditCheck{CreditScore: score, Inquiries: 1, Utilization: 30}}
	return decision.NewEngine(profile, stubRand{f: 0.5, n: 234})
}

func setupCache(t *testing.T) *utils.Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return utils.NewCache(rdb, "test:", time.Minute)
}

func newTestApplicationService(t *testing.T, score int, cache *utils.Cache) (*ApplicationService, *store.MemoryStore) {
	t.Helper()
	repo := store.NewMemoryStore()
	svc := NewApplicationService(repo, engineWithScore(score), cache, WithClock(newFakeClock().Now))
	return svc, repo
}

func sampleInput() ApplicationInput {
	return ApplicationInput{
		FirstName:        "John",
		LastName:         "Doe",
		Email:            "John.Doe@Example.com",
		Phone:            "(555) 123-4567",
		Address:          "123 Main Street",
		City:             "Austin",
		State:            "TX",
		ZipCode:          "78701",
		EmploymentStatus: "Full-Time",
		AnnualIncome:     85000,
		LoanPurpose:      "Home Improvement",
		LoanAmount:       25000,
		Verification:     &domain.Verification{ConsentToCheck: true, TermsAgreed: true},
	}
}

// pausingRepo holds the next GetApplication, once armed, after the store read
// and until released
type pausingRepo struct {
	store.Repository
	armed   atomic.Bool
	reached chan struct{}
	release chan struct{}
}

func newPausingRepo() *pausingRepo {
	return &pausingRepo{
		Repository: store.NewMemoryStore(),
		reached:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (p *pausingRepo) GetApplication(ctx context.Context, id string) (domain.Application, error) {
	app, err := p.Repository.GetApplication(ctx, id)
	if p.armed.CompareAndSwap(true, false) {
		close(p.reached)
		<-p.release
	}
	return app, err
}
