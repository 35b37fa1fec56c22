package post

import (
	"errors"
	"time"

	"github.com/BrotchMrToast/NoAI/internal/editor"
)

// Origin tags where a record came from. Seed records live outside the store
// and must never be written back through it. A tag beats sniffing id
// prefixes: a store-assigned id could collide with a reserved prefix.
type Origin string

const (
	OriginRemote Origin = "remote"
	OriginSeed   Origin = "seed"
)

var (
	ErrWrite  = errors.New("post: write failed")
	ErrStream = errors.New("post: stream failed")
)

// Record is one published post. Everything except Likes is immutable after
// creation; author presentation fields are denormalized at post time.
type Record struct {
	ID           string    `json:"id"`
	Origin       Origin    `json:"origin"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	ImageRef     string    `json:"image_ref"`
	Caption      string    `json:"caption"`
	Likes        []string  `json:"likes"`
	CreatedAt    time.Time `json:"created_at"`
}

// TimestampPending reports whether the server timestamp has not resolved
// yet. Pending records sort as most recent.
func (r Record) TimestampPending() bool {
	return r.CreatedAt.IsZero()
}

type ComposeRequest struct {
	Image   string          `json:"image"`
	Filter  editor.FilterID `json:"filter"`
	Strokes []editor.Stroke `json:"strokes"`
	Caption string          `json:"caption"`
}
