package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/storage"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "crm.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}

func TestGetMissingSlot(t *testing.T) {
	store := openStore(t)
	_, err := store.Get(context.Background(), "customers")
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)
}

func TestPutOverwritesSlot(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "customers", []byte(`[1]`)))
	require.NoError(t, store.Put(ctx, "customers", []byte(`[1,2]`)))
	require.NoError(t, store.Put(ctx, "deals", []byte(`[]`)))

	got, err := store.Get(ctx, "customers")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	slots, err := store.ListSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "customers", slots[0].Slot)
	assert.Equal(t, 5, slots[0].Size)
	assert.Equal(t, "deals", slots[1].Slot)
}

func TestSnapshotsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")
	ctx := context.Background()

	store, err := Open(path, nil)
	require.NoError(t, err)
	slot := storage.NewSlot[string]("tags", store)
	require.NoError(t, slot.Save(ctx, []string{"vip", "churn-risk"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := storage.NewSlot[string]("tags", reopened).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"vip", "churn-risk"}, got)
}

func TestClosedStoreFailsReads(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "crm.db"), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get(context.Background(), "customers")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrSlotNotFound)
}
