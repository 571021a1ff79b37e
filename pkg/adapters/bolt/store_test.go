package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/animgraph/pkg/adapters/bolt"
	"github.com/aretw0/animgraph/pkg/domain"
	"github.com/aretw0/animgraph/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, path string) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(path)
	require.NoError(t, err)
	return store
}

func TestBoltStore_Contract(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "slots.db"))
	defer store.Close()
	tests.SlotStoreContractTest(t, store)
}

func TestBoltStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	ctx := context.Background()

	store := open(t, path)
	require.NoError(t, store.Put(ctx, "avatar", &domain.Slot{Key: "Main", ID: "stable", Content: []byte("x")}))
	require.NoError(t, store.Close())

	store = open(t, path)
	defer store.Close()
	got, err := store.Get(ctx, "avatar", "Main")
	require.NoError(t, err)
	assert.Equal(t, "stable", got.ID)

	containers, err := store.Containers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"avatar"}, containers)
}
