package feed

import (
	"github.com/BrotchMrToast/NoAI/internal/follow"
	"github.com/BrotchMrToast/NoAI/internal/post"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, rec *Reconciler, store post.Store, follows *follow.Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		mode := Mode(c.Query("mode", string(ModeGlobal)))
		if mode != ModeGlobal && mode != ModeFollowing {
			return fiber.NewError(fiber.StatusBadRequest, "mode must be global or following")
		}

		viewerID, _ := c.Locals("user_id").(string)
		posts := rec.Current()

		if mode == ModeFollowing {
			if viewerID == "" {
				return fiber.NewError(fiber.StatusUnauthorized, "sign in to view the following feed")
			}
			followed, err := follows.List(c.Context(), viewerID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			posts = ApplyFollowFilter(posts, followed, viewerID, mode)
		}

		resp := fiber.Map{"mode": mode, "posts": withPlaceholders(posts)}
		if err := rec.Err(); err != nil {
			// stale-but-available: the last good list is still served
			resp["stream_error"] = err.Error()
		}
		return c.JSON(resp)
	})

	r.Post("/posts/:id/like", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		target, ok := rec.Find(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}

		toggled := ToggleLike(target.Likes, userID)

		// seed posts never hit the store; their likes are display-only
		committed := false
		if target.Origin == post.OriginRemote {
			if err := store.UpdateLikes(c.Context(), target.ID, toggled); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			committed = true
		}

		return c.JSON(fiber.Map{"id": target.ID, "likes": toggled, "committed": committed})
	})

	r.Get("/community", func(c *fiber.Ctx) error {
		viewerID, _ := c.Locals("user_id").(string)

		var followed []string
		if viewerID != "" {
			var err error
			followed, err = follows.List(c.Context(), viewerID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		set := make(map[string]struct{}, len(followed))
		for _, id := range followed {
			set[id] = struct{}{}
		}

		type entry struct {
			Profile
			Following bool `json:"following"`
		}
		roster := make([]entry, 0, len(SeedProfiles()))
		for _, p := range SeedProfiles() {
			_, ok := set[p.ID]
			roster = append(roster, entry{Profile: p, Following: ok})
		}
		return c.JSON(fiber.Map{"community": roster})
	})
}

func withPlaceholders(posts []post.Record) []post.Record {
	out := append([]post.Record(nil), posts...)
	for i := range out {
		if out[i].ImageRef == "" {
			out[i].ImageRef = PlaceholderImageRef
		}
	}
	return out
}
