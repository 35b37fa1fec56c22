package storage

import (
	"context"
	"errors"

	"github.com/BrotchMrToast/NoAI/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("storage: object not found")

// Service keeps flattened post images as blobs.
type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

type Object struct {
	ContentType string
	Data        []byte
}

func (s *Service) SaveImage(ctx context.Context, userID, contentType string, data []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, content_type, data)
		VALUES ($1,$2,$3,$4)
	`, id, userID, contentType, data)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) GetImage(ctx context.Context, id string) (Object, error) {
	row := s.db.QueryRow(ctx, `
		SELECT content_type, data FROM storage_objects WHERE id = $1
	`, id)

	var obj Object
	if err := row.Scan(&obj.ContentType, &obj.Data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Object{}, ErrNotFound
		}
		return Object{}, err
	}
	return obj, nil
}
