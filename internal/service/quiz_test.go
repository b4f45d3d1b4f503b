package service

import (
	"context"
	"errors"
	"testing"

	"quiz-tutor/internal/domain"
	"quiz-tutor/internal/metrics"
	"quiz-tutor/internal/scoring"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	tests := []struct {
		name    string
		policy  scoring.DuplicatePolicy
		answers []domain.SubmittedAnswer
		want    int
	}{
		{
			name: "all correct",
			answers: []domain.SubmittedAnswer{
				{QuestionID: "1", Answer: " paris "},
				{QuestionID: "2", Answer: "4"},
				{QuestionID: "3", Answer: "Dune"},
			},
			want: 3,
		},
		{
			name:    "empty submission",
			answers: []domain.SubmittedAnswer{},
			want:    0,
		},
		{
			name: "unknown ids ignored",
			answers: []domain.SubmittedAnswer{
				{QuestionID: "77", Answer: "Paris"},
				{QuestionID: "1", Answer: "PARIS"},
			},
			want: 1,
		},
		{
			name:   "duplicates counted independently by default",
			policy: "",
			answers: []domain.SubmittedAnswer{
				{QuestionID: "1", Answer: "Paris"},
				{QuestionID: "1", Answer: "Paris"},
			},
			want: 2,
		},
		{
			name:   "duplicates capped with first_only",
			policy: scoring.DuplicatesFirstOnly,
			answers: []domain.SubmittedAnswer{
				{QuestionID: "1", Answer: "Paris"},
				{QuestionID: "1", Answer: "Paris"},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := new(MockQuestionService)
			questions.On("GetQuestions", mock.Anything).Return(storedQuestions(), nil).Once()

			svc := NewQuizService(questions, tt.policy, nil)
			score, err := svc.Submit(context.Background(), tt.answers)

			require.NoError(t, err)
			assert.Equal(t, tt.want, score)
			questions.AssertExpectations(t)
		})
	}
}

func TestSubmit_RetrievalFailure(t *testing.T) {
	questions := new(MockQuestionService)
	retrievalErr := domain.NewRetrievalError(errors.New("connection refused"))
	questions.On("GetQuestions", mock.Anything).Return(nil, retrievalErr).Once()
	m := metrics.New(prometheus.NewRegistry())

	svc := NewQuizService(questions, scoring.DuplicatesIndependent, m)
	score, err := svc.Submit(context.Background(), []domain.SubmittedAnswer{{QuestionID: "1", Answer: "Paris"}})

	assert.Zero(t, score)
	assert.Same(t, retrievalErr, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Submissions.WithLabelValues("scored")))
}

func TestSubmit_RefetchesEveryTime(t *testing.T) {
	questions := new(MockQuestionService)
	questions.On("GetQuestions", mock.Anything).Return(storedQuestions(), nil).Twice()
	answers := []domain.SubmittedAnswer{{QuestionID: "1", Answer: "Paris"}, {QuestionID: "2", Answer: "5"}}

	svc := NewQuizService(questions, scoring.DuplicatesIndependent, nil)
	first, err := svc.Submit(context.Background(), answers)
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), answers)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, first, second)
	questions.AssertNumberOfCalls(t, "GetQuestions", 2)
}
