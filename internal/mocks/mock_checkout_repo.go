package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCheckoutRepo struct {
	mock.Mock
}

func (m *MockCheckoutRepo) Get(ctx context.Context, sessionID string) ([]byte, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCheckoutRepo) Save(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, data, ttl)
	return args.Error(0)
}

func (m *MockCheckoutRepo) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockCheckoutRepo) Lock(ctx context.Context, sessionID string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, sessionID, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockCheckoutRepo) Unlock(ctx context.Context, sessionID, token string) error {
	args := m.Called(ctx, sessionID, token)
	return args.Error(0)
}
