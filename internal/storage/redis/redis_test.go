package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/storage"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := New(client, "test:")
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestStoreGetMissingSlot(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Get(context.Background(), "customers")
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)
}

func TestStorePutThenGet(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "deals", []byte(`{"version":1,"items":[]}`)))
	got, err := store.Get(ctx, "deals")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"items":[]}`, string(got))

	raw, err := mr.Get("test:deals")
	require.NoError(t, err)
	assert.Equal(t, string(got), raw)
	assert.Zero(t, mr.TTL("test:deals"), "snapshots must not expire")
}

func TestStoreReportsBackendFailure(t *testing.T) {
	store, mr := newStore(t)
	mr.SetError("ERR backend down")

	_, err := store.Get(context.Background(), "tasks")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrSlotNotFound)
	assert.Error(t, store.Put(context.Background(), "tasks", []byte("[]")))
}

func TestSlotRoundTripOverRedis(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	type note struct {
		ID   string `json:"id"`
		Body string `json:"body"`
	}
	slot := storage.NewSlot[note]("notes", store)
	require.NoError(t, slot.Save(ctx, []note{{ID: "1", Body: "hello"}}))

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []note{{ID: "1", Body: "hello"}}, got)
}

func TestDialFailsWithoutServer(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = Dial(context.Background(), addr, "", 0, "")
	assert.Error(t, err)
}
