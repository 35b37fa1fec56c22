package post

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/BrotchMrToast/NoAI/internal/db"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store is the append/subscribe/mutate surface the feed depends on.
type Store interface {
	Append(ctx context.Context, rec Record) (string, error)
	UpdateLikes(ctx context.Context, id string, likes []string) error
	List(ctx context.Context) ([]Record, error)
	Subscribe() *Subscription
}

const changeChannel = "noai:posts:changed"

// PGStore keeps posts in Postgres and fans the full ordered collection out
// to subscribers on every change. A Redis channel relays change events
// between instances; the snapshot recompute is idempotent, so the echo of
// our own publish is harmless.
type PGStore struct {
	db    db.Querier
	redis *redis.Client
	mu    sync.RWMutex
	subs  map[*Subscription]struct{}
}

func NewStore(q db.Querier, redisClient *redis.Client) *PGStore {
	s := &PGStore{
		db:    q,
		redis: redisClient,
		subs:  map[*Subscription]struct{}{},
	}
	if redisClient != nil {
		go s.subscribeRedis()
	}
	return s
}

func (s *PGStore) Append(ctx context.Context, rec Record) (string, error) {
	rec.ID = uuid.NewString()
	if rec.Likes == nil {
		rec.Likes = []string{}
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO posts (id, author_id, author_name, author_avatar, image_ref, caption, likes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, rec.ID, rec.AuthorID, rec.AuthorName, rec.AuthorAvatar, rec.ImageRef, rec.Caption, rec.Likes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	s.changed(ctx)
	return rec.ID, nil
}

func (s *PGStore) UpdateLikes(ctx context.Context, id string, likes []string) error {
	if likes == nil {
		likes = []string{}
	}
	tag, err := s.db.Exec(ctx, `UPDATE posts SET likes = $2 WHERE id = $1`, id, likes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: post %s not found", ErrWrite, id)
	}
	s.changed(ctx)
	return nil
}

func (s *PGStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, author_id, author_name, author_avatar, image_ref, caption, likes, created_at
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStream, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec := Record{Origin: OriginRemote}
		if err := rows.Scan(&rec.ID, &rec.AuthorID, &rec.AuthorName, &rec.AuthorAvatar,
			&rec.ImageRef, &rec.Caption, &rec.Likes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStream, err)
		}
		if rec.Likes == nil {
			rec.Likes = []string{}
		}
		out = append(out, rec)
	}
	return out, nil
}

// Subscribe registers a new stream handle and delivers the current
// collection as its first snapshot.
func (s *PGStore) Subscribe() *Subscription {
	sub := newSubscription()
	sub.unregister = func() {
		s.mu.Lock()
		delete(s.subs, sub)
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	go func() {
		recs, err := s.List(context.Background())
		if err != nil {
			sub.fail(err)
			return
		}
		sub.push(recs)
	}()
	return sub
}

func (s *PGStore) changed(ctx context.Context) {
	if s.redis != nil {
		if err := s.redis.Publish(ctx, changeChannel, "changed").Err(); err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
	s.fanout(ctx)
}

func (s *PGStore) fanout(ctx context.Context) {
	s.mu.RLock()
	n := len(s.subs)
	s.mu.RUnlock()
	if n == 0 {
		return
	}

	recs, err := s.List(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for sub := range s.subs {
		if err != nil {
			sub.fail(err)
			continue
		}
		sub.push(recs)
	}
}

func (s *PGStore) subscribeRedis() {
	ctx := context.Background()
	pubsub := s.redis.Subscribe(ctx, changeChannel)
	defer pubsub.Close()

	for range pubsub.Channel() {
		s.fanout(ctx)
	}
}
