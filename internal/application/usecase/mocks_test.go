package usecase_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/event"
	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/port"
)

type mockLoanRepository struct {
	findByIDFunc func(ctx context.Context, tenantID, id string) (model.Loan, error)
}

func (m *mockLoanRepository) FindByID(ctx context.Context, tenantID, id string) (model.Loan, error) {
	return m.findByIDFunc(ctx, tenantID, id)
}

type mockCalculationEngine struct {
	getLoanCalculationFunc      func(ctx context.Context, loanID string) (model.EngineCalculation, error)
	updateCalculationInputsFunc func(ctx context.Context, loanID string, inputs port.CalculationInputs) error
	updateLoanAmountFunc        func(ctx context.Context, loanID string, newPrincipal decimal.Decimal) error

	mu       sync.Mutex
	getCalls int
}

func (m *mockCalculationEngine) GetLoanCalculation(ctx context.Context, loanID string) (model.EngineCalculation, error) {
	m.mu.Lock()
	m.getCalls++
	m.mu.Unlock()
	return m.getLoanCalculationFunc(ctx, loanID)
}

func (m *mockCalculationEngine) UpdateCalculationInputs(ctx context.Context, loanID string, inputs port.CalculationInputs) error {
	return m.updateCalculationInputsFunc(ctx, loanID, inputs)
}

func (m *mockCalculationEngine) UpdateLoanAmount(ctx context.Context, loanID string, newPrincipal decimal.Decimal) error {
	return m.updateLoanAmountFunc(ctx, loanID, newPrincipal)
}

func (m *mockCalculationEngine) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

// passthroughCache runs every fetch without memoizing, recording
// invalidations. Cache semantics themselves are covered by the cache
// package's own tests.
type passthroughCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *passthroughCache) Do(ctx context.Context, _ string, fetch port.FetchFunc) (model.CalculationResult, error) {
	return fetch(ctx)
}

func (c *passthroughCache) Invalidate(loanID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, loanID)
}

func (c *passthroughCache) invalidations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.invalidated...)
}

type mockEventPublisher struct {
	publishFunc func(ctx context.Context, events ...event.DomainEvent) error

	mu        sync.Mutex
	published []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.mu.Lock()
	m.published = append(m.published, events...)
	m.mu.Unlock()
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	return nil
}

func (m *mockEventPublisher) events() []event.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]event.DomainEvent(nil), m.published...)
}
