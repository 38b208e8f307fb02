package garmin

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoToken = errors.New("garmin: no stored token")

// TokenStore keeps per-rider vendor OAuth tokens in redis. The handle is
// passed in explicitly; refresh flows live outside this package.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func tokenKey(userID string) string {
	return "garmin:token:" + userID
}

func (s *TokenStore) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	if s.rdb == nil {
		return errors.New("garmin: token store not configured")
	}
	return s.rdb.Set(ctx, tokenKey(userID), token, ttl).Err()
}

func (s *TokenStore) Load(ctx context.Context, userID string) (string, error) {
	if s.rdb == nil {
		return "", ErrNoToken
	}
	token, err := s.rdb.Get(ctx, tokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *TokenStore) Delete(ctx context.Context, userID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, tokenKey(userID)).Err()
}
