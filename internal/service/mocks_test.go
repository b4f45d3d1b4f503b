package service

import (
	"context"
	"time"

	"quiz-tutor/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) GetAllQuestions(ctx context.Context) ([]*domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) SaveQuestions(ctx context.Context, questions []*domain.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuestionCache ---
type MockQuestionCache struct {
	mock.Mock
}

func (m *MockQuestionCache) GetQuestions(ctx context.Context) ([]*domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionCache) SetQuestions(ctx context.Context, questions []*domain.Question, ttl time.Duration) error {
	args := m.Called(ctx, questions, ttl)
	return args.Error(0)
}

func (m *MockQuestionCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockQuestionCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuestionService ---
type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) GetQuestions(ctx context.Context) ([]*domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
