package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlotStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.SlotStore.
func SlotStoreContractTest(t *testing.T, store ports.SlotStore) {
	t.Helper()
	ctx := context.Background()
	container := "contract-" + time.Now().Format("20060102150405")

	t.Run("Put_And_Get", func(t *testing.T) {
		slot := &domain.Slot{
			Key:       "Avatar_Main_Animator",
			ID:        "id-1",
			Content:   []byte(`{"name":"main"}`),
			Revision:  1,
			UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}
		require.NoError(t, store.Put(ctx, container, slot))

		got, err := store.Get(ctx, container, slot.Key)
		require.NoError(t, err)
		assert.Equal(t, slot.Key, got.Key)
		assert.Equal(t, slot.ID, got.ID)
		assert.Equal(t, slot.Content, got.Content)
		assert.Equal(t, slot.Revision, got.Revision)
		assert.True(t, slot.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("Put_Overwrites", func(t *testing.T) {
		key := "Avatar_Overwrite_Animator"
		require.NoError(t, store.Put(ctx, container, &domain.Slot{Key: key, ID: "keep", Content: []byte("a"), Revision: 1}))
		require.NoError(t, store.Put(ctx, container, &domain.Slot{Key: key, ID: "keep", Content: []byte("b"), Revision: 2}))

		got, err := store.Get(ctx, container, key)
		require.NoError(t, err)
		assert.Equal(t, "keep", got.ID)
		assert.Equal(t, []byte("b"), got.Content)
		assert.Equal(t, 2, got.Revision)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, container, "missing")
		assert.ErrorIs(t, err, domain.ErrSlotNotFound)

		_, err = store.Get(ctx, "missing-"+container, "missing")
		assert.ErrorIs(t, err, domain.ErrSlotNotFound)
	})

	t.Run("Get_ReturnsCopy", func(t *testing.T) {
		key := "Avatar_Copy_Animator"
		require.NoError(t, store.Put(ctx, container, &domain.Slot{Key: key, ID: "c", Content: []byte("abc")}))

		got, err := store.Get(ctx, container, key)
		require.NoError(t, err)
		got.Content[0] = 'z'

		again, err := store.Get(ctx, container, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again.Content)
	})

	t.Run("Delete", func(t *testing.T) {
		key := "Avatar_Delete_Animator"
		require.NoError(t, store.Put(ctx, container, &domain.Slot{Key: key, ID: "d"}))
		require.NoError(t, store.Delete(ctx, container, key))

		_, err := store.Get(ctx, container, key)
		assert.ErrorIs(t, err, domain.ErrSlotNotFound)
		assert.NoError(t, store.Delete(ctx, container, key), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		other := container + "-list"
		require.NoError(t, store.Put(ctx, other, &domain.Slot{Key: "b", ID: "2"}))
		require.NoError(t, store.Put(ctx, other, &domain.Slot{Key: "a", ID: "1"}))
		defer func() {
			_ = store.Delete(ctx, other, "a")
			_ = store.Delete(ctx, other, "b")
		}()

		keys, err := store.List(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, keys)

		keys, err = store.List(ctx, "empty-"+container)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}
