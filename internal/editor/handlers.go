package editor

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router) {
	r.Get("/filters", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"filters": Filters()})
	})

	r.Post("/flatten", func(c *fiber.Ctx) error {
		var req FlattenRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		out, err := FlattenPayload(req)
		if err != nil {
			if errors.Is(err, ErrDecode) || errors.Is(err, ErrInvalidFilter) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set(fiber.HeaderContentType, "image/jpeg")
		return c.Send(out)
	})
}

// FlattenPayload runs the whole editor pipeline for a transported request:
// decode, filter, replay strokes, flatten. Also used by the post compose
// handler.
func FlattenPayload(req FlattenRequest) ([]byte, error) {
	data, err := DecodeImagePayload(req.Image)
	if err != nil {
		return nil, err
	}

	draft, err := Load(data)
	if err != nil {
		return nil, err
	}
	defer draft.Discard()

	if req.Filter != "" {
		if err := draft.SetFilter(req.Filter); err != nil {
			return nil, err
		}
	}

	for _, s := range req.Strokes {
		if len(s.Points) == 0 {
			continue
		}
		draft.BeginStroke(s.Points[0])
		for _, p := range s.Points[1:] {
			draft.AppendStrokePoint(p)
		}
		draft.EndStroke()
	}

	return draft.Flatten()
}

// DecodeImagePayload accepts raw base64 or a data URL, as produced by
// canvas.toDataURL on the client.
func DecodeImagePayload(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ";base64,"); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrDecode
	}
	return data, nil
}
