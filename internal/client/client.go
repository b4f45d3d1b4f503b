// Package client talks to the quiz HTTP API.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-tutor/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("quiz api: status %d", e.Status)
	}
	return fmt.Sprintf("quiz api: %s (%s, status %d)", e.Message, e.Code, e.Status)
}

// Answer is one entry of a submission.
type Answer struct {
	QuestionID int64  `json:"questionId"`
	Answer     string `json:"answer"`
}

type submitRequest struct {
	Answers []Answer `json:"answers"`
}

// Client calls the /questions and /submit endpoints.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:5000/api.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// Questions fetches every question.
func (c *Client) Questions() ([]dto.QuestionResponse, error) {
	agent := fiber.Get(c.baseURL + "/questions").Timeout(c.timeout)

	code, body, errs := agent.Bytes()
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	if code != fiber.StatusOK {
		return nil, decodeAPIError(code, body)
	}

	var questions []dto.QuestionResponse
	if err := json.Unmarshal(body, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return questions, nil
}

// Submit posts all answers at once and returns the score.
func (c *Client) Submit(answers []Answer) (int, error) {
	if answers == nil {
		answers = []Answer{}
	}
	agent := fiber.Post(c.baseURL + "/submit").
		Timeout(c.timeout).
		JSON(submitRequest{Answers: answers})

	code, body, errs := agent.Bytes()
	if err := errors.Join(errs...); err != nil {
		return 0, fmt.Errorf("failed to submit answers: %w", err)
	}
	if code != fiber.StatusOK {
		return 0, decodeAPIError(code, body)
	}

	var resp dto.SubmitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to decode score: %w", err)
	}
	return resp.Score, nil
}

func decodeAPIError(code int, body []byte) error {
	apiErr := &APIError{Status: code}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	return apiErr
}
