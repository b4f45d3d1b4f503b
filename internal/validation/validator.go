package validation

import (
	"fmt"
	"unicode/utf8"

	"quiz-tutor/internal/config"
	"quiz-tutor/internal/domain"
)

const (
	// DefaultMaxAnswers caps how many entries a single submission may carry.
	DefaultMaxAnswers = 500
	// DefaultMaxAnswerLength caps a single answer, in characters.
	DefaultMaxAnswerLength = 2000
)

// Validator checks submissions before they reach the scoring service.
// Unknown question ids and blank answers are not errors; they simply score 0.
type Validator struct {
	maxAnswers      int
	maxAnswerLength int
}

// NewValidator creates a validator with the default limits.
func NewValidator() *Validator {
	return &Validator{
		maxAnswers:      DefaultMaxAnswers,
		maxAnswerLength: DefaultMaxAnswerLength,
	}
}

// NewValidatorFromConfig creates a validator using the limits in apiCfg.
// Unset limits fall back to the defaults.
func NewValidatorFromConfig(apiCfg config.APIConfig) *Validator {
	return NewValidator().WithLimits(apiCfg.MaxAnswers, apiCfg.MaxAnswerLength)
}

// WithLimits returns a copy of v using the given limits. Non-positive values
// keep the current limit.
func (v *Validator) WithLimits(maxAnswers, maxAnswerLength int) *Validator {
	out := *v
	if maxAnswers > 0 {
		out.maxAnswers = maxAnswers
	}
	if maxAnswerLength > 0 {
		out.maxAnswerLength = maxAnswerLength
	}
	return &out
}

// ValidateSubmission returns nil when the answers can be scored.
func (v *Validator) ValidateSubmission(answers []domain.SubmittedAnswer) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if len(answers) > v.maxAnswers {
		errs = append(errs, domain.NewFieldError("answers", "at most %d answers are accepted, got %d", v.maxAnswers, len(answers)))
		return errs
	}

	for i, a := range answers {
		if n := utf8.RuneCountInString(a.Answer); n > v.maxAnswerLength {
			errs = append(errs, domain.NewFieldError(
				fmt.Sprintf("answers[%d].answer", i),
				"must be at most %d characters, got %d", v.maxAnswerLength, n,
			))
		}
		if !utf8.ValidString(a.Answer) {
			errs = append(errs, domain.NewFieldError(fmt.Sprintf("answers[%d].answer", i), "must be valid UTF-8"))
		}
	}

	return errs
}
