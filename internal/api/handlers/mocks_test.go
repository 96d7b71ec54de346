package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hoang-11jjk/RealEstatePro/internal/models"
	"github.com/hoang-11jjk/RealEstatePro/internal/query"
	"github.com/hoang-11jjk/RealEstatePro/internal/services"
)

// --- Mocks ---

// MockPropertyService
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) List(ctx context.Context, f query.Filter, pg query.Page) (query.Result, error) {
	args := m.Called(ctx, f, pg)
	return args.Get(0).(query.Result), args.Error(1)
}

func (m *MockPropertyService) ListAll(ctx context.Context, f query.Filter) ([]models.Property, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) Get(ctx context.Context, id int64) (models.Property, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Property), args.Error(1)
}

func (m *MockPropertyService) Create(ctx context.Context, in services.PropertyInput) (models.Property, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Property), args.Error(1)
}

func (m *MockPropertyService) Patch(ctx context.Context, id int64, fields map[string]any) (models.Property, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(models.Property), args.Error(1)
}

func (m *MockPropertyService) SetVisibility(ctx context.Context, id int64, next models.Visibility) (models.Property, error) {
	args := m.Called(ctx, id, next)
	return args.Get(0).(models.Property), args.Error(1)
}

func (m *MockPropertyService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyService) StatsByLocation(ctx context.Context) ([]services.LocationCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.LocationCount), args.Error(1)
}
