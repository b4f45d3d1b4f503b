package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromYAML(t *testing.T, doc string) *Config {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return fromViper(v)
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := loadFromYAML(t, "")

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "quiz_db", cfg.DB.DBName)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.QuestionsTTL)
	assert.Equal(t, "independent", cfg.Scoring.DuplicatePolicy)
	assert.False(t, cfg.API.ExposeCorrectAnswers)
	assert.Equal(t, 30, cfg.API.SubmitRateLimit)
	assert.Equal(t, time.Minute, cfg.API.SubmitRateWindow)
	assert.Equal(t, 500, cfg.API.MaxAnswers)
	assert.Equal(t, 2000, cfg.API.MaxAnswerLength)
}

func TestFromViper_FileOverrides(t *testing.T) {
	cfg := loadFromYAML(t, `
db:
  driver: Oracle
  host: db.internal
  port: 1521
  user: quiz
  password: secret
  name: QUIZPDB
cache:
  enabled: true
  questions_ttl: 30s
scoring:
  duplicate_policy: first_only
logger:
  env: production
  file: logs/quiz.log
api:
  max_answers: 50
  max_answer_length: 280
`)

	assert.Equal(t, "oracle", cfg.DB.Driver)
	assert.Equal(t, 1521, cfg.DB.Port)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.QuestionsTTL)
	assert.Equal(t, "first_only", cfg.Scoring.DuplicatePolicy)
	assert.Equal(t, "production", cfg.Logger.Env)
	assert.Equal(t, "logs/quiz.log", cfg.Logger.File)
	assert.Equal(t, 50, cfg.API.MaxAnswers)
	assert.Equal(t, 280, cfg.API.MaxAnswerLength)
}

func TestGetDSN(t *testing.T) {
	tests := []struct {
		name     string
		db       DBConfig
		expected string
	}{
		{
			name:     "mysql",
			db:       DBConfig{Driver: "mysql", Host: "localhost", Port: 3306, User: "root", Password: "", DBName: "quiz_db"},
			expected: "root:@tcp(localhost:3306)/quiz_db?parseTime=true&charset=utf8mb4",
		},
		{
			name:     "oracle",
			db:       DBConfig{Driver: "oracle", Host: "db", Port: 1521, User: "quiz", Password: "pw", DBName: "QUIZPDB"},
			expected: "oracle://quiz:pw@db:1521/QUIZPDB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DB: tt.db}
			assert.Equal(t, tt.expected, cfg.GetDSN())
		})
	}
}
