package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tienda/internal/services"
	"tienda/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagedRef(t *testing.T, mem *storage.Memory, ns, asset string) storage.ImageRef {
	t.Helper()
	key := storage.ObjectKey(ns, asset, "jpg")
	require.NoError(t, mem.Put(context.Background(), key, bytes.NewReader([]byte("jpegdata")), 8, "image/jpeg"))
	return storage.ImageRef{Kind: storage.RefTemporary, URL: mem.URL(key), Namespace: ns, AssetID: asset, Ext: "jpg"}
}

func TestCommitMigratesStagedObject(t *testing.T) {
	mem := storage.NewMemory("http://s", "tienda")
	svc := &services.ImageService{Store: mem}
	ref := stagedRef(t, mem, "temp-1-ab", "asset1")

	res := svc.Commit(context.Background(), "p-9", []storage.ImageRef{ref})
	require.Len(t, res, 1)

	assert.Equal(t, services.Migrated, res[0].Outcome)
	finalKey := storage.ObjectKey("p-9", "asset1", "jpg")
	assert.Equal(t, mem.URL(finalKey), res[0].URL)
	assert.True(t, mem.Has(finalKey), "object must live under the product folder")
	assert.False(t, mem.Has(ref.Key()), "staged object must be removed")
}

func TestCommitPassesFinalThrough(t *testing.T) {
	mem := storage.NewMemory("http://s", "tienda")
	svc := &services.ImageService{Store: mem}
	ref := storage.ImageRef{Kind: storage.RefFinal, URL: "http://s/tienda/p-9/old.jpg"}

	res := svc.Commit(context.Background(), "p-9", []storage.ImageRef{ref})
	require.Len(t, res, 1)
	assert.Equal(t, services.PassedThrough, res[0].Outcome)
	assert.Equal(t, ref.URL, res[0].URL)
}

func TestCommitKeepsTemporaryOnDownloadFailure(t *testing.T) {
	mem := storage.NewMemory("http://s", "tienda")
	svc := &services.ImageService{Store: mem}
	ref := stagedRef(t, mem, "temp-2-cd", "asset2")
	mem.FailGet[ref.Key()] = true

	res := svc.Commit(context.Background(), "p-9", []storage.ImageRef{ref})
	require.Len(t, res, 1)

	assert.Equal(t, services.KeptTemporary, res[0].Outcome)
	assert.Equal(t, ref.URL, res[0].URL, "original temp url kept")
	assert.Error(t, res[0].Reason)
}

func TestCommitKeepsTemporaryOnUploadFailure(t *testing.T) {
	mem := storage.NewMemory("http://s", "tienda")
	svc := &services.ImageService{Store: mem}
	ref := stagedRef(t, mem, "temp-3-ef", "asset3")
	mem.FailPut[storage.ObjectKey("p-9", "asset3", "jpg")] = true

	res := svc.Commit(context.Background(), "p-9", []storage.ImageRef{ref})
	require.Len(t, res, 1)

	assert.Equal(t, services.KeptTemporary, res[0].Outcome)
	assert.True(t, mem.Has(ref.Key()), "staged object stays when migration fails")
}

func TestSweepTempRemovesOnlyOldStagedObjects(t *testing.T) {
	mem := storage.NewMemory("http://s", "tienda")
	svc := &services.ImageService{Store: mem}
	ctx := context.Background()

	old := stagedRef(t, mem, "temp-old-x", "a")
	fresh := stagedRef(t, mem, "temp-new-y", "b")
	permanent := storage.ObjectKey("p-1", "c", "jpg")
	require.NoError(t, mem.Put(ctx, permanent, bytes.NewReader([]byte("x")), 1, ""))

	mem.Touch(old.Key(), time.Now().Add(-48*time.Hour))

	n, err := svc.SweepTemp(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, mem.Has(old.Key()))
	assert.True(t, mem.Has(fresh.Key()))
	assert.True(t, mem.Has(permanent), "product folders are never swept")
}

func TestDeleteProductObjects(t *testing.T) {
	mem := storage.NewMemory("http://s", "tienda")
	svc := &services.ImageService{Store: mem}
	ctx := context.Background()

	k1 := storage.ObjectKey("p-7", "a", "jpg")
	k2 := storage.ObjectKey("p-7", "b", "png")
	other := storage.ObjectKey("p-8", "c", "jpg")
	for _, k := range []string{k1, k2, other} {
		require.NoError(t, mem.Put(ctx, k, bytes.NewReader([]byte("x")), 1, ""))
	}

	svc.DeleteProductObjects(ctx, "p-7")
	assert.False(t, mem.Has(k1))
	assert.False(t, mem.Has(k2))
	assert.True(t, mem.Has(other))
}
