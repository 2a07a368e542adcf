package mocks

import (
	"context"

	"github.com/metinatakli/movie-checkout/internal/domain"
)

type MockSeatInventory struct {
	GetSeatLayoutFunc func(ctx context.Context, screeningID int) (*domain.SeatLayout, error)
}

func (m *MockSeatInventory) GetSeatLayout(ctx context.Context, screeningID int) (*domain.SeatLayout, error) {
	return m.GetSeatLayoutFunc(ctx, screeningID)
}
