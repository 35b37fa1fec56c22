package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/BrotchMrToast/NoAI/internal/auth"
	"github.com/BrotchMrToast/NoAI/internal/config"
	"github.com/BrotchMrToast/NoAI/internal/db"
	"github.com/BrotchMrToast/NoAI/internal/editor"
	"github.com/BrotchMrToast/NoAI/internal/feed"
	"github.com/BrotchMrToast/NoAI/internal/follow"
	"github.com/BrotchMrToast/NoAI/internal/post"
	"github.com/BrotchMrToast/NoAI/internal/storage"
	"github.com/BrotchMrToast/NoAI/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Server owns the session-scoped resources: the store subscription, the
// reconciler and the websocket hub. Close releases them.
type Server struct {
	App        *fiber.App
	Cfg        config.Config
	DB         *pgxpool.Pool
	Redis      *redis.Client
	Store      *post.PGStore
	Reconciler *feed.Reconciler
	Hub        *stream.Hub

	removeListener func()
}

func NewServer(cfg config.Config, pool *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	var q db.Querier
	if pool != nil {
		q = pool
	}

	store := post.NewStore(q, redisClient)
	reconciler := feed.NewReconciler(store, feed.SeedPosts(time.Now()))
	hub := stream.NewHub()

	s := &Server{
		App:        app,
		Cfg:        cfg,
		DB:         pool,
		Redis:      redisClient,
		Store:      store,
		Reconciler: reconciler,
		Hub:        hub,
	}

	s.removeListener = reconciler.AddListener(func(posts []post.Record) {
		payload, err := json.Marshal(fiber.Map{"posts": posts})
		if err != nil {
			log.Printf("snapshot marshal error: %v", err)
			return
		}
		hub.Broadcast(payload)
	})
	if pool != nil {
		reconciler.Subscribe()
	}

	registerRoutes(s, q)
	return s
}

func registerRoutes(s *Server, q db.Querier) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	required := auth.Middleware(s.Cfg.JWTSecret)
	optional := auth.OptionalMiddleware(s.Cfg.JWTSecret)

	blobs := storage.NewService(q)
	follows := follow.NewService(s.Redis)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, q))
	editor.RegisterRoutes(s.App.Group("/editor"))
	post.RegisterRoutes(s.App.Group("/posts"), s.Store, blobs, required)
	feed.RegisterRoutes(s.App.Group("/feed", optional), s.Reconciler, s.Store, follows, required)
	follow.RegisterRoutes(s.App.Group("/follow"), follows, required)
	storage.RegisterRoutes(s.App.Group("/storage"), blobs)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Hub)
}

// Close tears the feed session down: the hub listener is removed and the
// store subscription released so no events are delivered after shutdown.
func (s *Server) Close() {
	if s.removeListener != nil {
		s.removeListener()
	}
	s.Reconciler.Release()
}
