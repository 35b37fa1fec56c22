package follow

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Followed author ids live as one serialized list per viewer, rewritten
// whole on every mutation. The key never expires.
const keyPrefix = "noai:following:"

var ErrUnavailable = errors.New("follow: storage unavailable")

type Service struct {
	redis *redis.Client
}

func NewService(redisClient *redis.Client) *Service {
	return &Service{redis: redisClient}
}

// List returns the viewer's followed author ids. A viewer with no stored
// set starts empty.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	if s.redis == nil {
		return []string{}, nil
	}

	val, err := s.redis.Get(ctx, keyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var out []string
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// Toggle follows authorID if not followed, unfollows otherwise, persists
// the new list and reports whether the viewer now follows the author.
func (s *Service) Toggle(ctx context.Context, userID, authorID string) ([]string, bool, error) {
	if s.redis == nil {
		return nil, false, ErrUnavailable
	}

	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	out := make([]string, 0, len(list)+1)
	following := true
	for _, id := range list {
		if id == authorID {
			following = false
			continue
		}
		out = append(out, id)
	}
	if following {
		out = append(out, authorID)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, false, err
	}
	if err := s.redis.Set(ctx, keyPrefix+userID, data, 0).Err(); err != nil {
		return nil, false, err
	}
	return out, following, nil
}
