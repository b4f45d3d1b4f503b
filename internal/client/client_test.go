package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/questions", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"text":"Capital of France?","question_type":"mcq","options":["Paris","Rome"]},
			{"id":2,"text":"Describe Go.","question_type":"descriptive"}]`))
	}))
	defer srv.Close()

	questions, err := New(srv.URL+"/api/", time.Second).Questions()

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, int64(1), questions[0].ID)
	assert.Equal(t, []string{"Paris", "Rome"}, questions[0].Options)
	assert.Equal(t, "descriptive", questions[1].QuestionType)
}

func TestQuestions_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"RETRIEVAL_ERROR","message":"Error fetching questions","status":500}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/api", time.Second).Questions()

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "RETRIEVAL_ERROR", apiErr.Code)
	assert.Equal(t, "quiz api: Error fetching questions (RETRIEVAL_ERROR, status 500)", err.Error())
}

func TestSubmit(t *testing.T) {
	var received submitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/submit", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"score":2}`))
	}))
	defer srv.Close()

	score, err := New(srv.URL+"/api", time.Second).Submit([]Answer{
		{QuestionID: 1, Answer: "Paris"},
		{QuestionID: 2, Answer: "A language"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, score)
	assert.Equal(t, []Answer{{QuestionID: 1, Answer: "Paris"}, {QuestionID: 2, Answer: "A language"}}, received.Answers)
}

func TestSubmit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, 200*time.Millisecond).Submit(nil)
	assert.ErrorContains(t, err, "failed to submit answers")
}

func TestAPIError_WithoutBody(t *testing.T) {
	err := decodeAPIError(http.StatusBadGateway, []byte("<html>"))
	assert.EqualError(t, err, "quiz api: status 502")
}
