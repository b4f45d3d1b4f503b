package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"quiz-tutor/internal/config"
	"quiz-tutor/internal/handler"
	"quiz-tutor/internal/metrics"
	"quiz-tutor/internal/middleware"
	"quiz-tutor/internal/repository"
	"quiz-tutor/internal/scoring"
	"quiz-tutor/internal/service"
	"quiz-tutor/internal/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var selectQuestions = regexp.QuoteMeta(`FROM questions`)

type testServer struct {
	app  *fiber.App
	mock sqlmock.Sqlmock
}

func newTestServer(t *testing.T, policy scoring.DuplicatePolicy, submitLimit int) *testServer {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	repo := repository.NewQuestionDatabaseAdapter(sqlx.NewDb(mockDB, "sqlmock"))
	questions := service.NewQuestionService(repo, nil, 0, m)
	quiz := service.NewQuizService(questions, policy, m)

	var limiter *middleware.RateLimiter
	if submitLimit > 0 {
		limiter = middleware.NewRateLimiter(submitLimit, time.Hour, m)
		t.Cleanup(limiter.Close)
	}

	app := New(Deps{
		Config:        &config.Config{},
		QuizHandler:   handler.NewQuizHandler(questions, quiz, validation.NewValidator(), false),
		HealthHandler: handler.NewHealthHandler(questions),
		Metrics:       m,
		Gatherer:      reg,
		SubmitLimiter: limiter,
	})
	return &testServer{app: app, mock: mock}
}

func (s *testServer) expectQuestions() {
	rows := sqlmock.NewRows([]string{"id", "text", "question_type", "options", "correct_answer"}).
		AddRow(1, "What is the capital of France?", "mcq", `["Paris","London","Berlin"]`, "Paris").
		AddRow(2, "The chemical symbol for water is __.", "fill_in_blank", nil, "H2O").
		AddRow(3, "Why do you want to learn Go?", "descriptive", nil, nil)
	s.mock.ExpectQuery(selectQuestions).WillReturnRows(rows)
}

func (s *testServer) submit(t *testing.T, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestQuizFlow(t *testing.T) {
	s := newTestServer(t, scoring.DuplicatesIndependent, 0)

	s.expectQuestions()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/questions", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	var questions []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&questions))
	require.Len(t, questions, 3)
	assert.Equal(t, "mcq", questions[0]["question_type"])
	assert.NotContains(t, questions[0], "correct_answer")

	s.expectQuestions()
	status, body := s.submit(t, `{"answers":[
		{"questionId":1,"answer":" paris "},
		{"questionId":2,"answer":"h2o"},
		{"questionId":3,"answer":"concurrency"},
		{"questionId":99,"answer":"ignored"}
	]}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["score"])

	assert.NoError(t, s.mock.ExpectationsWereMet())
}

func TestSubmit_DuplicatePolicies(t *testing.T) {
	payload := `{"answers":[{"questionId":1,"answer":"Paris"},{"questionId":1,"answer":"Paris"}]}`

	independent := newTestServer(t, scoring.DuplicatesIndependent, 0)
	independent.expectQuestions()
	_, body := independent.submit(t, payload)
	assert.Equal(t, float64(2), body["score"])

	firstOnly := newTestServer(t, scoring.DuplicatesFirstOnly, 0)
	firstOnly.expectQuestions()
	_, body = firstOnly.submit(t, payload)
	assert.Equal(t, float64(1), body["score"])
}

func TestSubmit_StoreFailure(t *testing.T) {
	s := newTestServer(t, scoring.DuplicatesIndependent, 0)
	s.mock.ExpectQuery(selectQuestions).WillReturnError(errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"))

	status, body := s.submit(t, `{"answers":[{"questionId":1,"answer":"Paris"}]}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "RETRIEVAL_ERROR", body["code"])
	assert.Equal(t, "Error fetching questions", body["message"])
	assert.NotContains(t, body, "score")
}

func TestSubmit_RateLimited(t *testing.T) {
	s := newTestServer(t, scoring.DuplicatesIndependent, 1)

	s.expectQuestions()
	status, _ := s.submit(t, `{"answers":[]}`)
	assert.Equal(t, http.StatusOK, status)

	status, body := s.submit(t, `{"answers":[]}`)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", body["code"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, scoring.DuplicatesIndependent, 0)

	s.mock.ExpectPing()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.mock.ExpectPing().WillReturnError(errors.New("gone"))
	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `quiztutor_http_requests_total{endpoint="/health",method="GET",status="503"} 1`)
}

func TestRecoverFromPanic(t *testing.T) {
	s := newTestServer(t, scoring.DuplicatesIndependent, 0)
	s.app.Get("/panic", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
