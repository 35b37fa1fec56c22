package follow

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(client), mr
}

func TestListStartsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	list, err := svc.List(context.Background(), "viewer-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", list)
	}
}

func TestToggleFollowsAndUnfollows(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	list, followed, err := svc.Toggle(ctx, "viewer-1", "user_maya")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !followed || len(list) != 1 || list[0] != "user_maya" {
		t.Fatalf("unexpected state after follow: %v followed=%v", list, followed)
	}

	list, followed, err = svc.Toggle(ctx, "viewer-1", "user_liam")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !followed || len(list) != 2 {
		t.Fatalf("unexpected state after second follow: %v", list)
	}

	list, followed, err = svc.Toggle(ctx, "viewer-1", "user_maya")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if followed || len(list) != 1 || list[0] != "user_liam" {
		t.Fatalf("unexpected state after unfollow: %v followed=%v", list, followed)
	}
}

func TestTogglePersistsAcrossReads(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Toggle(ctx, "viewer-1", "user_sarah"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	list, err := svc.List(ctx, "viewer-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0] != "user_sarah" {
		t.Fatalf("expected persisted follow, got %v", list)
	}
}

func TestListsAreScopedPerViewer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Toggle(ctx, "viewer-1", "user_maya"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	other, err := svc.List(ctx, "viewer-2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("viewer-2 must start empty, got %v", other)
	}
}

func TestNilRedis(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	list, err := svc.List(ctx, "viewer-1")
	if err != nil || len(list) != 0 {
		t.Fatalf("list without redis should be empty, got %v err=%v", list, err)
	}

	_, _, err = svc.Toggle(ctx, "viewer-1", "user_maya")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestListWithStoppedRedis(t *testing.T) {
	svc, mr := newTestService(t)
	mr.Close()

	if _, err := svc.List(context.Background(), "viewer-1"); err == nil {
		t.Fatalf("expected error with unreachable redis")
	}
}
