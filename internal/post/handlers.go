package post

import (
	"errors"

	"github.com/BrotchMrToast/NoAI/internal/editor"
	"github.com/BrotchMrToast/NoAI/internal/storage"
	"github.com/gofiber/fiber/v2"
)

const defaultCaption = "Just captured this #nofilter #noai"

func RegisterRoutes(r fiber.Router, store Store, blobs *storage.Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		displayName, _ := c.Locals("display_name").(string)
		avatarURL, _ := c.Locals("avatar_url").(string)
		if displayName == "" {
			displayName = "Demo User"
		}

		var req ComposeRequest
		if err := c.BodyParser(&req); err != nil || req.Image == "" {
			return fiber.NewError(fiber.StatusBadRequest, "image required")
		}

		flat, err := editor.FlattenPayload(editor.FlattenRequest{
			Image:   req.Image,
			Filter:  req.Filter,
			Strokes: req.Strokes,
		})
		if err != nil {
			if errors.Is(err, editor.ErrDecode) || errors.Is(err, editor.ErrInvalidFilter) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		blobID, err := blobs.SaveImage(c.Context(), userID, "image/jpeg", flat)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		caption := req.Caption
		if caption == "" {
			caption = defaultCaption
		}

		rec := Record{
			Origin:       OriginRemote,
			AuthorID:     userID,
			AuthorName:   displayName,
			AuthorAvatar: avatarURL,
			ImageRef:     "/storage/" + blobID,
			Caption:      caption,
			Likes:        []string{},
		}
		id, err := store.Append(c.Context(), rec)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		rec.ID = id

		return c.Status(fiber.StatusCreated).JSON(rec)
	})
}
