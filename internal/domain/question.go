package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// QuestionType identifies how a question is rendered and graded.
type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "mcq"
	QuestionTypeFillInBlank QuestionType = "fill_in_blank"
	QuestionTypeDescriptive QuestionType = "descriptive"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeFillInBlank, QuestionTypeDescriptive:
		return true
	default:
		return false
	}
}

// Question is one row of the question store. Questions are created out of band
// and never mutated by the API.
type Question struct {
	ID            int64
	Text          string
	Type          QuestionType
	Options       []string // mcq only, in display order
	CorrectAnswer string   // meaningless for descriptive questions
}

// Key returns the identifier form used to join submitted answers.
func (q *Question) Key() string {
	return strconv.FormatInt(q.ID, 10)
}

// HasOptions reports whether an option list is present.
func (q *Question) HasOptions() bool {
	return q.Options != nil
}

// Validate checks the question invariants: a known type, non-empty text,
// options present iff the type is mcq, and a correct answer for gradable types.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidQuestionError("text is required")
	}
	if !q.Type.Valid() {
		return NewInvalidQuestionError(fmt.Sprintf("unknown question_type %q", q.Type))
	}
	if q.Type == QuestionTypeMCQ {
		if len(q.Options) == 0 {
			return NewInvalidQuestionError("mcq question requires options")
		}
	} else if q.HasOptions() {
		return NewInvalidQuestionError(fmt.Sprintf("%s question must not have options", q.Type))
	}
	if q.Type != QuestionTypeDescriptive && strings.TrimSpace(q.CorrectAnswer) == "" {
		return NewInvalidQuestionError(fmt.Sprintf("%s question requires correct_answer", q.Type))
	}
	return nil
}

// SubmittedAnswer is one client-supplied answer. It is never persisted.
type SubmittedAnswer struct {
	QuestionID string
	Answer     string
}
