package service

import (
	"context"

	"quiz-tutor/internal/domain"
	"quiz-tutor/internal/logger"
	"quiz-tutor/internal/metrics"
	"quiz-tutor/internal/scoring"

	"go.uber.org/zap"
)

// QuizService scores submissions.
type QuizService interface {
	// Submit re-reads the full question set and returns the score for answers.
	// No score is computed when the questions cannot be retrieved.
	Submit(ctx context.Context, answers []domain.SubmittedAnswer) (int, error)
}

type quizService struct {
	questions QuestionService
	policy    scoring.DuplicatePolicy
	metrics   *metrics.Metrics
}

// NewQuizService creates a QuizService that grades with the given duplicate policy.
func NewQuizService(questions QuestionService, policy scoring.DuplicatePolicy, m *metrics.Metrics) QuizService {
	if policy == "" {
		policy = scoring.DuplicatesIndependent
	}
	return &quizService{
		questions: questions,
		policy:    policy,
		metrics:   m,
	}
}

func (s *quizService) Submit(ctx context.Context, answers []domain.SubmittedAnswer) (int, error) {
	questions, err := s.questions.GetQuestions(ctx)
	if err != nil {
		s.metrics.SubmissionFailed()
		return 0, err
	}

	result := scoring.Evaluate(questions, answers, s.policy)
	s.metrics.ObserveSubmission(result)

	logger.Get().Info("Final score",
		zap.Int("score", result.Score),
		zap.Int("answers", len(answers)),
		zap.Int("unmatched", result.Count(scoring.OutcomeUnmatched)),
		zap.Int("duplicates", result.Count(scoring.OutcomeDuplicate)),
		zap.String("duplicate_policy", string(s.policy)),
	)
	return result.Score, nil
}
