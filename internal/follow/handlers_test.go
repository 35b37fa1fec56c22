package follow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func newFollowApp(t *testing.T) *fiber.App {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	viewer := func(c *fiber.Ctx) error {
		c.Locals("user_id", "viewer-1")
		return c.Next()
	}

	app := fiber.New()
	RegisterRoutes(app.Group("/follow"), NewService(client), viewer)
	return app
}

func TestFollowRoutes(t *testing.T) {
	app := newFollowApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/follow/", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list: %v (status %d)", err, resp.StatusCode)
	}
	var body struct {
		Following []string `json:"following"`
		Followed  bool     `json:"followed"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Following) != 0 {
		t.Fatalf("expected empty following list, got %v", body.Following)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/follow/user_maya", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle: %v (status %d)", err, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Followed || len(body.Following) != 1 || body.Following[0] != "user_maya" {
		t.Fatalf("unexpected toggle response: %+v", body)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/follow/user_maya", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle: %v (status %d)", err, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Followed || len(body.Following) != 0 {
		t.Fatalf("unexpected untoggle response: %+v", body)
	}
}
