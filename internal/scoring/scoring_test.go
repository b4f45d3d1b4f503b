package scoring

import (
	"testing"

	"quiz-tutor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureQuestions() []*domain.Question {
	return []*domain.Question{
		{ID: 1, Text: "Capital of France?", Type: domain.QuestionTypeMCQ, Options: []string{"Paris", "Rome", "Berlin"}, CorrectAnswer: "Paris"},
		{ID: 2, Text: "Go was announced in __.", Type: domain.QuestionTypeFillInBlank, CorrectAnswer: "2009"},
		{ID: 3, Text: "Describe a goroutine.", Type: domain.QuestionTypeDescriptive},
	}
}

func answer(id, text string) domain.SubmittedAnswer {
	return domain.SubmittedAnswer{QuestionID: id, Answer: text}
}

func TestScore_CaseAndWhitespaceInsensitive(t *testing.T) {
	tests := []struct {
		given string
		want  int
	}{
		{"Paris", 1},
		{"paris", 1},
		{" Paris ", 1},
		{"PARIS", 1},
		{"\tparis\n", 1},
		{"\uFEFFParis", 1},
		{"Paris\u00a0", 1},
		{"parys", 0},
		{"Par is", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.given, func(t *testing.T) {
			got := Score(fixtureQuestions(), []domain.SubmittedAnswer{answer("1", tt.given)}, DuplicatesIndependent)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_Descriptive(t *testing.T) {
	tests := []struct {
		name  string
		given string
		want  int
	}{
		{"single character", "x", 1},
		{"sentence", "A lightweight thread managed by the Go runtime.", 1},
		{"empty", "", 0},
		{"spaces only", "   ", 0},
		{"newlines only", "\n\n", 0},
		{"byte order mark only", "\uFEFF", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(fixtureQuestions(), []domain.SubmittedAnswer{answer("3", tt.given)}, DuplicatesIndependent)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_UnknownQuestionIgnored(t *testing.T) {
	answers := []domain.SubmittedAnswer{
		answer("999", "Paris"),
		answer("", "Paris"),
		answer("abc", "Paris"),
		answer("1", "Paris"),
	}

	result := Evaluate(fixtureQuestions(), answers, DuplicatesIndependent)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 3, result.Count(OutcomeUnmatched))
}

func TestScore_AllCorrect(t *testing.T) {
	answers := []domain.SubmittedAnswer{
		answer("1", "paris"),
		answer("2", " 2009"),
		answer("3", "something"),
	}
	assert.Equal(t, len(fixtureQuestions()), Score(fixtureQuestions(), answers, DuplicatesIndependent))
}

func TestScore_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0, Score(fixtureQuestions(), nil, DuplicatesIndependent))
	assert.Equal(t, 0, Score(fixtureQuestions(), []domain.SubmittedAnswer{}, DuplicatesFirstOnly))
	assert.Equal(t, 0, Score(nil, []domain.SubmittedAnswer{answer("1", "Paris")}, DuplicatesIndependent))
}

func TestScore_Idempotent(t *testing.T) {
	questions := fixtureQuestions()
	answers := []domain.SubmittedAnswer{answer("1", "Paris"), answer("2", "2010"), answer("3", "x")}

	first := Evaluate(questions, answers, DuplicatesIndependent)
	second := Evaluate(questions, answers, DuplicatesIndependent)

	assert.Equal(t, first, second)
	assert.Equal(t, fixtureQuestions(), questions)
}

func TestScore_EmptyAnswerNeverMatchesEmptyCorrectAnswer(t *testing.T) {
	questions := []*domain.Question{{ID: 4, Text: "Broken row", Type: domain.QuestionTypeFillInBlank}}
	assert.Equal(t, 0, Score(questions, []domain.SubmittedAnswer{answer("4", "  ")}, DuplicatesIndependent))
}

func TestScore_UnknownTypeScoresZero(t *testing.T) {
	questions := []*domain.Question{{ID: 5, Text: "Legacy", Type: "true_false", CorrectAnswer: "true"}}

	result := Evaluate(questions, []domain.SubmittedAnswer{answer("5", "true")}, DuplicatesIndependent)

	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Answers, 1)
	assert.Equal(t, OutcomeUngraded, result.Answers[0].Outcome)
}

func TestScore_DuplicatePolicies(t *testing.T) {
	answers := []domain.SubmittedAnswer{
		answer("1", "Paris"),
		answer("1", "paris"),
		answer("1", "Rome"),
	}

	assert.Equal(t, 2, Score(fixtureQuestions(), answers, DuplicatesIndependent))

	result := Evaluate(fixtureQuestions(), answers, DuplicatesFirstOnly)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.Count(OutcomeDuplicate))
}

func TestScore_FirstOnlyUsesFirstEntryEvenWhenWrong(t *testing.T) {
	answers := []domain.SubmittedAnswer{answer("1", "Rome"), answer("1", "Paris")}
	assert.Equal(t, 0, Score(fixtureQuestions(), answers, DuplicatesFirstOnly))
}

func TestEvaluate_Breakdown(t *testing.T) {
	answers := []domain.SubmittedAnswer{
		answer("1", "Rome"),
		answer("2", ""),
		answer("3", "ok"),
		answer("42", "?"),
	}

	result := Evaluate(fixtureQuestions(), answers, DuplicatesIndependent)

	require.Len(t, result.Answers, 4)
	assert.Equal(t, []Outcome{OutcomeIncorrect, OutcomeBlank, OutcomeCorrect, OutcomeUnmatched}, []Outcome{
		result.Answers[0].Outcome,
		result.Answers[1].Outcome,
		result.Answers[2].Outcome,
		result.Answers[3].Outcome,
	})
	assert.Equal(t, domain.QuestionTypeDescriptive, result.Answers[2].Type)
	assert.Equal(t, 1, result.Score)
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, err := ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DuplicatesIndependent, p)

	p, err = ParseDuplicatePolicy(" First_Only ")
	require.NoError(t, err)
	assert.Equal(t, DuplicatesFirstOnly, p)

	_, err = ParseDuplicatePolicy("cap")
	assert.EqualError(t, err, `unknown duplicate policy "cap"`)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "paris", Normalize("  PaRiS\t"))
	assert.Equal(t, "", Normalize(" \n "))
}
