package handler

import (
	"context"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// newQuietPublisher accepts every publish
func newQuietPublisher() *MockEventPublisher {
	events := new(MockEventPublisher)
	events.On("Publish", mock.Anything, mock.Anything).Return(nil)
	return events
}

type MockNumberGenerator struct {
	mock.Mock
}

func (m *MockNumberGenerator) Next(ctx context.Context, seriesCode string) (string, error) {
	args := m.Called(ctx, seriesCode)
	return args.String(0), args.Error(1)
}
