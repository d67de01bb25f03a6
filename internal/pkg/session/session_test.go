package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func sampleData() *Data {
	return &Data{
		User:    &User{ID: 1, Name: "Ann", Email: "a@x.com"},
		Flashes: []Flash{{Kind: FlashSuccess, Message: "Logged in"}},
	}
}

// exerciseStore runs the behaviour shared by every Store.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) err = %v", err)
	}

	id := NewID()
	if err := store.Save(ctx, id, sampleData(), time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.User == nil || got.User.ID != 1 || got.User.Email != "a@x.com" {
		t.Fatalf("user = %+v", got.User)
	}
	if len(got.Flashes) != 1 || got.Flashes[0].Message != "Logged in" {
		t.Fatalf("flashes = %+v", got.Flashes)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after delete err = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	data := sampleData()
	if err := store.Save(ctx, "id", data, time.Hour); err != nil {
		t.Fatal(err)
	}

	data.User.Name = "mutated"
	loaded, _ := store.Load(ctx, "id")
	if loaded.User.Name != "Ann" {
		t.Fatal("store must not alias the caller's data")
	}
	loaded.Flashes[0].Message = "mutated"
	again, _ := store.Load(ctx, "id")
	if again.Flashes[0].Message != "Logged in" {
		t.Fatal("store must not alias loaded data")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Save(ctx, "id", sampleData(), time.Minute); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)

	if _, err := store.Load(ctx, "id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired Load err = %v", err)
	}
	if store.Len() != 0 {
		t.Fatal("expired entry should be dropped on access")
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Save(ctx, "old", sampleData(), time.Second)
	now = now.Add(time.Minute)
	for i := 0; i < sweepEvery; i++ {
		_ = store.Save(ctx, "live", sampleData(), time.Hour)
	}
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want only the live session", store.Len())
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisOptions{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestRedisStoreFromClientSharesKeyspace(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client)
	ctx := context.Background()

	if err := store.Save(ctx, "abc", sampleData(), time.Hour); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists(redisKeyPrefix + "abc") {
		t.Fatalf("key %q not written", redisKeyPrefix+"abc")
	}
	if n, err := client.Exists(ctx, redisKeyPrefix+"abc").Result(); err != nil || n != 1 {
		t.Fatalf("client sees %d keys, err %v", n, err)
	}

	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if err := client.Ping(ctx).Err(); err == nil {
		t.Fatal("Close should close the wrapped client")
	}
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisOptions{Addr: mr.Addr()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	if err := store.Save(ctx, "id", sampleData(), time.Minute); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(redisKeyPrefix + "id"); ttl != time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Load(ctx, "id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after ttl err = %v", err)
	}
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisOptions{Addr: mr.Addr()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := mr.Set(redisKeyPrefix+"bad", "{not json"); err != nil {
		t.Fatal(err)
	}
	_, err = store.Load(context.Background(), "bad")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want decode error", err)
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr}); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestDataIsEmpty(t *testing.T) {
	var nilData *Data
	if !nilData.IsEmpty() || !(&Data{}).IsEmpty() {
		t.Fatal("nil and zero data are empty")
	}
	if sampleData().IsEmpty() {
		t.Fatal("sample data is not empty")
	}
}
