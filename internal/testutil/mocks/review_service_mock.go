package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kmazurov/fhmp/internal/models"
)

// MockReviewService is a mock implementation of services.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) QueueNotes(ctx context.Context) ([]models.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockReviewService) RandomNotes(ctx context.Context) ([]models.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockReviewService) AddReview(ctx context.Context, noteID string, result models.ReviewResult) (*models.Note, error) {
	args := m.Called(ctx, noteID, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}
