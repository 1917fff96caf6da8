package codestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/medagenda/internal/domain/verification"
	"github.com/BruksfildServices01/medagenda/internal/testutil"
)

func exerciseStore(t *testing.T, store verification.Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Find(ctx, "a@b.com"); !errors.Is(err, verification.ErrNoCode) {
		t.Fatalf("expected ErrNoCode, got %v", err)
	}

	first := verification.Record{
		Email:     "a@b.com",
		Code:      "000123",
		Purpose:   verification.PurposeRegistration,
		CreatedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := first
	second.Code = "999999"
	second.Purpose = verification.PurposeRecovery
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save replacement: %v", err)
	}

	got, err := store.Find(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Code != "999999" || got.Purpose != verification.PurposeRecovery {
		t.Fatalf("expected the replacement record, got %+v", got)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created at not preserved: %s", got.CreatedAt)
	}

	if err := store.Delete(ctx, "a@b.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Find(ctx, "a@b.com"); !errors.Is(err, verification.ErrNoCode) {
		t.Fatalf("expected ErrNoCode after delete, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisStore(client, time.Hour))
}

func TestRedisStore_Retention(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, verification.Record{Email: "a@b.com", Code: "111111", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(59 * time.Minute)
	if _, err := store.Find(ctx, "a@b.com"); err != nil {
		t.Fatalf("record must survive inside retention: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Find(ctx, "a@b.com"); !errors.Is(err, verification.ErrNoCode) {
		t.Fatalf("expected record to be gone, got %v", err)
	}
}

func TestGormStore(t *testing.T) {
	exerciseStore(t, NewGormStore(testutil.NewDB(t)))
}
