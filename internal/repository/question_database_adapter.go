package repository

import (
	"context"
	"fmt"
	"quiz-tutor/internal/domain"
	"quiz-tutor/internal/repository/models"
	"quiz-tutor/internal/util"

	"github.com/jmoiron/sqlx"
)

const selectAllQuestionsQuery = `SELECT 
		id "id",
		text "text",
		question_type "question_type",
		options "options",
		correct_answer "correct_answer"
	FROM questions 
	ORDER BY id`

const insertQuestionQuery = `INSERT INTO questions (
		text, question_type, options, correct_answer
	) VALUES (
		:text, :question_type, :options, :correct_answer
	)`

const insertQuestionWithIDQuery = `INSERT INTO questions (
		id, text, question_type, options, correct_answer
	) VALUES (
		:id, :text, :question_type, :options, :correct_answer
	)`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
	tx domain.TransactionManager
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{
		db: db,
		tx: NewTransactionManagerAdapter(db),
	}
}

// GetAllQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetAllQuestions(ctx context.Context) ([]*domain.Question, error) {
	var rows []models.Question
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, selectAllQuestionsQuery); err != nil {
		return nil, fmt.Errorf("failed to select questions: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

// SaveQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestions(ctx context.Context, questions []*domain.Question) error {
	return a.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, a.db)
		for i, q := range questions {
			if q == nil {
				return fmt.Errorf("cannot save nil question at index %d", i)
			}
			row := toModelQuestion(q)
			query := insertQuestionQuery
			if row.ID != 0 {
				query = insertQuestionWithIDQuery
			}
			result, err := exec.NamedExecContext(txCtx, query, row)
			if err != nil {
				return fmt.Errorf("failed to insert question %d: %w", i, err)
			}
			if q.ID == 0 {
				// Oracle drivers do not report generated keys; the ID stays 0 there.
				if id, err := result.LastInsertId(); err == nil {
					q.ID = id
				}
			}
		}
		return nil
	})
}

// Ping implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func toDomainQuestion(m *models.Question) *domain.Question {
	q := &domain.Question{
		ID:   m.ID,
		Text: m.Text,
		Type: domain.QuestionType(m.QuestionType),
	}
	if m.Options != nil {
		q.Options = []string(m.Options)
	}
	if m.CorrectAnswer.Valid {
		q.CorrectAnswer = m.CorrectAnswer.String
	}
	return q
}

func toModelQuestion(q *domain.Question) *models.Question {
	m := &models.Question{
		ID:           q.ID,
		Text:         q.Text,
		QuestionType: string(q.Type),
	}
	if q.Options != nil {
		m.Options = models.OptionList(q.Options)
	}
	m.CorrectAnswer = util.StringToNullString(q.CorrectAnswer)
	return m
}
