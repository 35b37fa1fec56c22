package post

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BrotchMrToast/NoAI/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

type fakeStore struct {
	appended []Record
	fail     bool
}

func (f *fakeStore) Append(_ context.Context, rec Record) (string, error) {
	if f.fail {
		return "", ErrWrite
	}
	rec.ID = "post-1"
	f.appended = append(f.appended, rec)
	return rec.ID, nil
}

func (f *fakeStore) UpdateLikes(context.Context, string, []string) error { return nil }

func (f *fakeStore) List(context.Context) ([]Record, error) { return nil, nil }

func (f *fakeStore) Subscribe() *Subscription { return newSubscription() }

func stubAuth(userID, displayName, avatarURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("display_name", displayName)
		c.Locals("avatar_url", avatarURL)
		return c.Next()
	}
}

func encodePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(1, 1, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func composeApp(t *testing.T, store Store) (*fiber.App, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	app := fiber.New()
	RegisterRoutes(app.Group("/posts"), store, storage.NewService(mock), stubAuth("user-1", "Demo User", "https://placehold.co/100x100/333/fff?text=ME"))
	return app, mock
}

func TestComposePost(t *testing.T) {
	store := &fakeStore{}
	app, mock := composeApp(t, store)

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "image/jpeg", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	payload, _ := json.Marshal(ComposeRequest{
		Image:   encodePNG(t, 40, 30),
		Filter:  "warm",
		Caption: "sunset",
	})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.ID != "post-1" || rec.Origin != OriginRemote {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.AuthorID != "user-1" || rec.AuthorName != "Demo User" {
		t.Fatalf("author not taken from session: %+v", rec)
	}
	if !strings.HasPrefix(rec.ImageRef, "/storage/") {
		t.Fatalf("unexpected image ref %q", rec.ImageRef)
	}
	if rec.Caption != "sunset" {
		t.Fatalf("unexpected caption %q", rec.Caption)
	}
	if len(store.appended) != 1 {
		t.Fatalf("expected one appended record")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestComposeDefaultCaption(t *testing.T) {
	store := &fakeStore{}
	app, mock := composeApp(t, store)

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "image/jpeg", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	payload, _ := json.Marshal(ComposeRequest{Image: encodePNG(t, 20, 20)})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("compose: %v (status %d)", err, resp.StatusCode)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.Caption != "Just captured this #nofilter #noai" {
		t.Fatalf("expected default caption, got %q", rec.Caption)
	}
}

func TestComposeBadImage(t *testing.T) {
	app, _ := composeApp(t, &fakeStore{})

	payload, _ := json.Marshal(ComposeRequest{Image: base64.StdEncoding.EncodeToString([]byte("not an image"))})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestComposeUnknownFilter(t *testing.T) {
	app, _ := composeApp(t, &fakeStore{})

	payload, _ := json.Marshal(ComposeRequest{Image: encodePNG(t, 20, 20), Filter: "glitch"})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestComposeStoreFailure(t *testing.T) {
	app, mock := composeApp(t, &fakeStore{fail: true})

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "image/jpeg", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	payload, _ := json.Marshal(ComposeRequest{Image: encodePNG(t, 20, 20)})
	req := httptest.NewRequest(http.MethodPost, "/posts/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
