package domain

import "context"

// QuestionRepository defines the interface for question persistence.
type QuestionRepository interface {
	// GetAllQuestions returns every stored question in storage order.
	// It fails as a whole; partial results are never returned.
	GetAllQuestions(ctx context.Context) ([]*Question, error)

	// SaveQuestions inserts the given questions in a single transaction and
	// assigns their IDs.
	SaveQuestions(ctx context.Context, questions []*Question) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// TransactionManager runs fn inside a store transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
