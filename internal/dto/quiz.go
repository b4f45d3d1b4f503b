package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"quiz-tutor/internal/domain"
)

// QuestionResponse represents a question in the API response
// @Description Question as rendered by the quiz client
type QuestionResponse struct {
	ID            int64    `json:"id" example:"1"`
	Text          string   `json:"text" example:"What is the capital of France?"`
	QuestionType  string   `json:"question_type" example:"mcq" enums:"mcq,fill_in_blank,descriptive"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
}

// NewQuestionResponse maps a domain question. The correct answer is only
// included when exposeAnswer is set.
func NewQuestionResponse(q *domain.Question, exposeAnswer bool) QuestionResponse {
	resp := QuestionResponse{
		ID:           q.ID,
		Text:         q.Text,
		QuestionType: string(q.Type),
	}
	if q.HasOptions() {
		resp.Options = append([]string{}, q.Options...)
	}
	if exposeAnswer {
		answer := q.CorrectAnswer
		resp.CorrectAnswer = &answer
	}
	return resp
}

// QuestionID accepts a JSON number or string and holds its decimal form.
type QuestionID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuestionID(normalizeNumeric(strings.TrimSpace(s)))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("questionId must be a number or string: %w", err)
	}
	*id = QuestionID(normalizeNumeric(n.String()))
	return nil
}

// normalizeNumeric rewrites integral numbers such as "1.0" or "1e2" to their
// plain decimal form. Anything else is returned unchanged.
func normalizeNumeric(s string) string {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(v, 10)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}

// SubmittedAnswer represents one answer in a submission
type SubmittedAnswer struct {
	QuestionID QuestionID `json:"questionId" swaggertype:"string" example:"1"`
	Answer     string     `json:"answer" example:"Paris"`
}

// SubmitRequest represents the request body for POST /submit
// @Description All answers of one quiz session
type SubmitRequest struct {
	Answers []SubmittedAnswer `json:"answers"`
}

// ToDomain converts the request into scoring input.
func (r SubmitRequest) ToDomain() []domain.SubmittedAnswer {
	out := make([]domain.SubmittedAnswer, 0, len(r.Answers))
	for _, a := range r.Answers {
		out = append(out, domain.SubmittedAnswer{
			QuestionID: string(a.QuestionID),
			Answer:     a.Answer,
		})
	}
	return out
}

// SubmitResponse represents the score returned for a submission
type SubmitResponse struct {
	Score int `json:"score" example:"3"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}
