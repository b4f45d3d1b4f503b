// Package scoring grades a quiz submission against the stored question set.
//
// Everything here is a pure function of its inputs: the same questions and
// answers always produce the same score.
package scoring

import (
	"fmt"
	"strings"
	"unicode"

	"quiz-tutor/internal/domain"
)

// DuplicatePolicy controls how repeated answers to one question are graded.
type DuplicatePolicy string

const (
	// DuplicatesIndependent grades every entry on its own, so repeating a
	// correct answer adds a point each time.
	DuplicatesIndependent DuplicatePolicy = "independent"
	// DuplicatesFirstOnly grades only the first entry per question.
	DuplicatesFirstOnly DuplicatePolicy = "first_only"
)

// ParseDuplicatePolicy maps a config value to a policy. Empty means
// DuplicatesIndependent.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DuplicatesIndependent:
		return DuplicatesIndependent, nil
	case DuplicatesFirstOnly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q", s)
	}
}

// Outcome says what happened to one submitted answer.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeBlank     Outcome = "blank"
	OutcomeUnmatched Outcome = "unmatched"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeUngraded  Outcome = "ungraded"
)

// AnswerResult is the grading of a single submitted answer.
type AnswerResult struct {
	QuestionID string
	Type       domain.QuestionType
	Outcome    Outcome
	Points     int
}

// Result is the breakdown of a whole submission.
type Result struct {
	Score   int
	Answers []AnswerResult
}

// Count returns how many answers ended with the given outcome.
func (r Result) Count(o Outcome) int {
	n := 0
	for _, a := range r.Answers {
		if a.Outcome == o {
			n++
		}
	}
	return n
}

// Normalize trims surrounding whitespace, including a byte order mark, and
// lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimFunc(s, isTrimmable))
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Evaluate grades answers against questions and returns the per-answer
// breakdown. Nil questions are skipped.
func Evaluate(questions []*domain.Question, answers []domain.SubmittedAnswer, policy DuplicatePolicy) Result {
	byKey := make(map[string]*domain.Question, len(questions))
	for _, q := range questions {
		if q == nil {
			continue
		}
		if _, exists := byKey[q.Key()]; !exists {
			byKey[q.Key()] = q
		}
	}

	result := Result{Answers: make([]AnswerResult, 0, len(answers))}
	seen := make(map[string]bool, len(answers))

	for _, a := range answers {
		key := strings.TrimSpace(a.QuestionID)
		q, ok := byKey[key]
		if !ok {
			result.Answers = append(result.Answers, AnswerResult{QuestionID: a.QuestionID, Outcome: OutcomeUnmatched})
			continue
		}

		if policy == DuplicatesFirstOnly && seen[key] {
			result.Answers = append(result.Answers, AnswerResult{QuestionID: key, Type: q.Type, Outcome: OutcomeDuplicate})
			continue
		}
		seen[key] = true

		ar := AnswerResult{QuestionID: key, Type: q.Type, Outcome: grade(q, a.Answer)}
		if ar.Outcome == OutcomeCorrect {
			ar.Points = 1
		}
		result.Score += ar.Points
		result.Answers = append(result.Answers, ar)
	}

	return result
}

// Score is Evaluate without the breakdown.
func Score(questions []*domain.Question, answers []domain.SubmittedAnswer, policy DuplicatePolicy) int {
	return Evaluate(questions, answers, policy).Score
}

func grade(q *domain.Question, answer string) Outcome {
	given := Normalize(answer)
	if given == "" {
		return OutcomeBlank
	}

	switch q.Type {
	case domain.QuestionTypeMCQ, domain.QuestionTypeFillInBlank:
		if given == Normalize(q.CorrectAnswer) {
			return OutcomeCorrect
		}
		return OutcomeIncorrect
	case domain.QuestionTypeDescriptive:
		return OutcomeCorrect
	default:
		return OutcomeUngraded
	}
}
