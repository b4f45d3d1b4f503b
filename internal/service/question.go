package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-tutor/internal/domain"
	"quiz-tutor/internal/logger"
	"quiz-tutor/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const questionListFlightKey = "questions:all"

// QuestionService returns the question set used by both endpoints.
type QuestionService interface {
	// GetQuestions returns every stored question ordered by id. Store
	// failures come back as a RETRIEVAL_ERROR DomainError.
	GetQuestions(ctx context.Context) ([]*domain.Question, error)

	// Ping reports whether the store, and the cache when enabled, are reachable.
	Ping(ctx context.Context) error
}

type questionService struct {
	repo     domain.QuestionRepository
	cache    domain.QuestionCache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	sfGroup  singleflight.Group
}

// NewQuestionService creates a QuestionService. cache may be nil, in which
// case every call reads from the repository.
func NewQuestionService(repo domain.QuestionRepository, cache domain.QuestionCache, cacheTTL time.Duration, m *metrics.Metrics) QuestionService {
	return &questionService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  m,
	}
}

func (s *questionService) GetQuestions(ctx context.Context) ([]*domain.Question, error) {
	if s.cache != nil {
		questions, err := s.cache.GetQuestions(ctx)
		switch {
		case err == nil:
			s.metrics.CacheLookup("hit")
			return questions, nil
		case errors.Is(err, domain.ErrCacheMiss):
			s.metrics.CacheLookup("miss")
		default:
			s.metrics.CacheLookup("error")
			logger.Get().Warn("Question cache read failed, falling back to store", zap.Error(err))
		}
	}

	res, err, shared := s.sfGroup.Do(questionListFlightKey, func() (interface{}, error) {
		questions, err := s.repo.GetAllQuestions(ctx)
		if err != nil {
			s.metrics.StoreLoad("error")
			return nil, err
		}
		s.metrics.StoreLoad("ok")

		if s.cache != nil {
			if err := s.cache.SetQuestions(ctx, questions, s.cacheTTL); err != nil {
				logger.Get().Warn("Failed to cache question list", zap.Error(err))
			}
		}
		return questions, nil
	})
	if err != nil {
		logger.Get().Error("Error fetching questions", zap.Error(err), zap.Bool("shared", shared))
		return nil, domain.NewRetrievalError(err)
	}

	questions, ok := res.([]*domain.Question)
	if !ok {
		return nil, domain.NewInternalError("Unexpected question list type", fmt.Errorf("got %T", res))
	}
	return questions, nil
}

func (s *questionService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return domain.NewUnavailableError("Question store is unreachable", err)
	}
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			return domain.NewUnavailableError("Question cache is unreachable", err)
		}
	}
	return nil
}
