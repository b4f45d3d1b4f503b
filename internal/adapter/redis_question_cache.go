package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-tutor/internal/cache"
	"quiz-tutor/internal/domain"

	"github.com/redis/go-redis/v9"
)

// cachedQuestion is the payload stored in Redis. It carries the correct
// answer, so the snapshot must never be served to clients directly.
type cachedQuestion struct {
	ID            int64    `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// RedisQuestionCache implements domain.QuestionCache on top of a Redis client.
type RedisQuestionCache struct {
	client redis.Cmdable
	key    string
}

// NewRedisQuestionCache creates a question cache that stores the list under
// cache.QuestionListKey.
func NewRedisQuestionCache(client redis.Cmdable) domain.QuestionCache {
	return &RedisQuestionCache{client: client, key: cache.QuestionListKey()}
}

// GetQuestions translates redis.Nil to domain.ErrCacheMiss. A payload that
// no longer decodes is reported as a miss as well.
func (r *RedisQuestionCache) GetQuestions(ctx context.Context) ([]*domain.Question, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	var payload []cachedQuestion
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, domain.ErrCacheMiss
	}

	questions := make([]*domain.Question, 0, len(payload))
	for _, p := range payload {
		questions = append(questions, &domain.Question{
			ID:            p.ID,
			Text:          p.Text,
			Type:          domain.QuestionType(p.Type),
			Options:       p.Options,
			CorrectAnswer: p.CorrectAnswer,
		})
	}
	return questions, nil
}

func (r *RedisQuestionCache) SetQuestions(ctx context.Context, questions []*domain.Question, ttl time.Duration) error {
	payload := make([]cachedQuestion, 0, len(questions))
	for _, q := range questions {
		if q == nil {
			continue
		}
		payload = append(payload, cachedQuestion{
			ID:            q.ID,
			Text:          q.Text,
			Type:          string(q.Type),
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode question list: %w", err)
	}
	return r.client.Set(ctx, r.key, string(raw), ttl).Err()
}

func (r *RedisQuestionCache) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func (r *RedisQuestionCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
