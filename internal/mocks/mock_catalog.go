package mocks

import (
	"context"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalog struct {
	mock.Mock
	domain.CatalogService
}

func (m *MockCatalog) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockCatalog) ListTheaters(ctx context.Context, region string) ([]domain.Theater, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Theater), args.Error(1)
}

func (m *MockCatalog) ListScreenings(ctx context.Context, movieID, theaterID int, date string) ([]domain.Screening, error) {
	args := m.Called(ctx, movieID, theaterID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Screening), args.Error(1)
}

func (m *MockCatalog) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockCatalog) GetTheater(ctx context.Context, id int) (*domain.Theater, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theater), args.Error(1)
}

func (m *MockCatalog) GetScreening(ctx context.Context, id int) (*domain.Screening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screening), args.Error(1)
}
