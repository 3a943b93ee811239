package repository

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionRepository keeps the hashes of admin session tokens that are still
// valid. Deleting a hash revokes the token.
type SessionRepository interface {
	Save(ctx context.Context, tokenHash string, expiresAt time.Time) error
	Exists(ctx context.Context, tokenHash string) (bool, error)
	Delete(ctx context.Context, tokenHash string) error
}

const sessionKeyPrefix = "careers:session:"

type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (r *RedisSessionRepository) Save(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, sessionKeyPrefix+tokenHash, expiresAt.Unix(), ttl).Err()
}

func (r *RedisSessionRepository) Exists(ctx context.Context, tokenHash string) (bool, error) {
	n, err := r.client.Exists(ctx, sessionKeyPrefix+tokenHash).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	return r.client.Del(ctx, sessionKeyPrefix+tokenHash).Err()
}

// MemorySessionRepository is used when no Redis is configured. Sessions do
// not survive a restart.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Save(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[tokenHash] = expiresAt
	return nil
}

func (r *MemorySessionRepository) Exists(ctx context.Context, tokenHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiresAt, ok := r.sessions[tokenHash]
	if !ok {
		return false, nil
	}
	if !r.now().Before(expiresAt) {
		delete(r.sessions, tokenHash)
		return false, nil
	}
	return true, nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, tokenHash)
	return nil
}
