package handler

import (
	"context"

	"portfolio-api/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) BuildProjects(ctx context.Context, username string) ([]domain.Project, error) {
	args := m.Called(ctx, username)
	projects, _ := args.Get(0).([]domain.Project)
	return projects, args.Error(1)
}

type MockVisitorService struct {
	mock.Mock
}

func (m *MockVisitorService) RecordVisit(ctx context.Context, visit domain.Visit) (*domain.VisitResult, error) {
	args := m.Called(ctx, visit)
	result, _ := args.Get(0).(*domain.VisitResult)
	return result, args.Error(1)
}

func (m *MockVisitorService) GetStats(ctx context.Context) (*domain.VisitorStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*domain.VisitorStats)
	return stats, args.Error(1)
}
