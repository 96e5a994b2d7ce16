package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/esgview/admin-gateway/internal/core/domain"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSnapshotStore(client, time.Hour)
}

func TestSnapshotStore_TokenRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if token, err := store.LoadToken(ctx); err != nil || token != "" {
		t.Fatalf("expected empty store, got %q err=%v", token, err)
	}

	if err := store.SaveToken(ctx, "tok-1"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	token, err := store.LoadToken(ctx)
	if err != nil || token != "tok-1" {
		t.Fatalf("expected tok-1, got %q err=%v", token, err)
	}
}

func TestSnapshotStore_ProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if profile, err := store.LoadProfile(ctx); err != nil || profile != nil {
		t.Fatalf("expected empty store, got %+v err=%v", profile, err)
	}

	saved := &domain.UserProfile{
		Username:        "dube-user",
		Role:            domain.RoleClient,
		PortfolioAccess: []string{"dube-trade-port"},
		Quality:         domain.QualityConfirmed,
	}
	if err := store.SaveProfile(ctx, saved); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	loaded, err := store.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if loaded.Username != saved.Username || loaded.Quality != saved.Quality || len(loaded.PortfolioAccess) != 1 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestSnapshotStore_Clear_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.SaveToken(ctx, "tok-1")
	_ = store.SaveProfile(ctx, &domain.UserProfile{Username: "dube-user"})

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}

	if token, _ := store.LoadToken(ctx); token != "" {
		t.Fatalf("expected token gone, got %q", token)
	}
	if profile, _ := store.LoadProfile(ctx); profile != nil {
		t.Fatalf("expected profile gone, got %+v", profile)
	}
}
