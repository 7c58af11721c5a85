package service

import (
	"context"

	"portfolio-api/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRepositoryFetcher for testing
type MockRepositoryFetcher struct {
	mock.Mock
}

func (m *MockRepositoryFetcher) ListRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	args := m.Called(ctx, username)
	repos, _ := args.Get(0).([]domain.Repository)
	return repos, args.Error(1)
}

func (m *MockRepositoryFetcher) GetLanguages(ctx context.Context, fullName string) (domain.LanguageStats, error) {
	args := m.Called(ctx, fullName)
	languages, _ := args.Get(0).(domain.LanguageStats)
	return languages, args.Error(1)
}

func (m *MockRepositoryFetcher) GetReadme(ctx context.Context, fullName, filename string) (string, error) {
	args := m.Called(ctx, fullName, filename)
	return args.String(0), args.Error(1)
}

// MockVisitorRepository for testing
type MockVisitorRepository struct {
	mock.Mock
}

func (m *MockVisitorRepository) Create(ctx context.Context, record *domain.VisitRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockVisitorRepository) ListRecent(ctx context.Context, limit int) ([]*domain.VisitRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]*domain.VisitRecord)
	return records, args.Error(1)
}

func (m *MockVisitorRepository) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockVisitorRepository) Close() error {
	return m.Called().Error(0)
}

// MockGeoLocator for testing
type MockGeoLocator struct {
	mock.Mock
}

func (m *MockGeoLocator) Lookup(ctx context.Context, ip string) (*domain.Geolocation, error) {
	args := m.Called(ctx, ip)
	geo, _ := args.Get(0).(*domain.Geolocation)
	return geo, args.Error(1)
}

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }
