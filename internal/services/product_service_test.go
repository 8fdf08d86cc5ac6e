package services_test

import (
	"context"
	"testing"

	"tienda/internal/domain"
	"tienda/internal/repos"
	"tienda/internal/services"
	"tienda/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) (*services.ProductService, *storage.Memory) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mem := storage.NewMemory("http://s", "tienda")
	return &services.ProductService{
		Products: repos.NewProductRepo(db),
		Images:   repos.NewImageRepo(db),
		Statuses: repos.NewStatusRepo(db),
		Attrs:    repos.NewAttributeRepo(db),
		Media:    &services.ImageService{Store: mem},
	}, mem
}

func finalRefs(urls ...string) storage.ImageList {
	out := make(storage.ImageList, len(urls))
	for i, u := range urls {
		out[i] = storage.ImageRef{Kind: storage.RefFinal, URL: u}
	}
	return out
}

func input(title string, imgs storage.ImageList) services.ProductInput {
	return services.ProductInput{Title: title, Price: 1500, Images: imgs}
}

func TestCreateRequiresAtLeastOneImage(t *testing.T) {
	svc, _ := newProductService(t)
	_, _, err := svc.Create(context.Background(), input("Silla", nil))
	require.ErrorIs(t, err, services.ErrNoImages)
}

func TestCreateStartsImagesFromZero(t *testing.T) {
	svc, _ := newProductService(t)
	p, _, err := svc.Create(context.Background(), input("Silla", finalRefs("u1", "u2", "u3")))
	require.NoError(t, err)

	require.Len(t, p.Images, 3)
	for i, img := range p.Images {
		assert.Equal(t, i, img.DisplayOrder)
		assert.Equal(t, i == 0, img.IsMain, "only the first image is main")
	}
	require.NotNil(t, p.Status)
	assert.Equal(t, domain.StatusAvailable, p.Status.Name, "default status applies when none given")
}

func TestUpdateEqualSetIsIdempotent(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()
	p, _, err := svc.Create(ctx, input("Silla", finalRefs("u1", "u2")))
	require.NoError(t, err)
	before := p.Images

	p2, _, err := svc.Update(ctx, p.ID, input("Silla renovada", finalRefs("u1", "u2")))
	require.NoError(t, err)

	require.Len(t, p2.Images, 2)
	for i := range before {
		assert.Equal(t, before[i].ID, p2.Images[i].ID, "rows must be untouched")
		assert.Equal(t, before[i].DisplayOrder, p2.Images[i].DisplayOrder)
	}
	assert.Equal(t, "Silla renovada", p2.Title)
}

func TestUpdateAppendsAfterMaxOrder(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()
	p, _, err := svc.Create(ctx, input("Silla", finalRefs("u1", "u2")))
	require.NoError(t, err)

	p2, _, err := svc.Update(ctx, p.ID, input("Silla", finalRefs("u1", "u2", "u3")))
	require.NoError(t, err)

	require.Len(t, p2.Images, 3)
	added := p2.Images[2]
	assert.Equal(t, "u3", added.URL)
	assert.Equal(t, 2, added.DisplayOrder, "continues from max+1")
	assert.False(t, added.IsMain, "product already had images")
}

func TestUpdateRemovalLeavesOthersAlone(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()
	p, _, err := svc.Create(ctx, input("Silla", finalRefs("u1", "u2", "u3")))
	require.NoError(t, err)
	keep0, keep2 := p.Images[0], p.Images[2]

	p2, _, err := svc.Update(ctx, p.ID, input("Silla", finalRefs("u1", "u3")))
	require.NoError(t, err)

	require.Len(t, p2.Images, 2)
	assert.Equal(t, keep0.ID, p2.Images[0].ID)
	assert.Equal(t, keep0.DisplayOrder, p2.Images[0].DisplayOrder)
	assert.Equal(t, keep2.ID, p2.Images[1].ID)
	assert.Equal(t, keep2.DisplayOrder, p2.Images[1].DisplayOrder, "survivors keep their display order")
}

func TestUpdateCommitsStagedImages(t *testing.T) {
	svc, mem := newProductService(t)
	ctx := context.Background()
	p, _, err := svc.Create(ctx, input("Silla", finalRefs("u1")))
	require.NoError(t, err)

	staged := stagedRef(t, mem, "temp-77-zz", "asset9")
	imgs := storage.ImageList{storage.ImageRef{Kind: storage.RefFinal, URL: "u1"}, staged}
	p2, results, err := svc.Update(ctx, p.ID, input("Silla", imgs))
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, services.Migrated, results[1].Outcome)
	require.Len(t, p2.Images, 2)
	finalKey := storage.ObjectKey(p.ID, "asset9", "jpg")
	assert.Equal(t, mem.URL(finalKey), p2.Images[1].URL)
	assert.True(t, mem.Has(finalKey))
}

func TestAttributesReplacedWholesale(t *testing.T) {
	svc, _ := newProductService(t)
	ctx := context.Background()

	attr := domain.Attribute{ID: "at-1", Name: "Marca", Type: domain.AttrTypeText}
	require.NoError(t, svc.Attrs.Insert(attr))

	in := input("Silla", finalRefs("u1"))
	in.Attributes = &[]services.AttrInput{{AttributeID: "at-1", Value: "Acme"}}
	p, _, err := svc.Create(ctx, in)
	require.NoError(t, err)
	require.Len(t, p.Attrs, 1)
	firstID := p.Attrs[0].ID

	// Omitting attributes leaves bindings untouched.
	p2, _, err := svc.Update(ctx, p.ID, input("Silla", finalRefs("u1")))
	require.NoError(t, err)
	require.Len(t, p2.Attrs, 1)
	assert.Equal(t, firstID, p2.Attrs[0].ID)

	// Including attributes replaces them wholesale.
	in3 := input("Silla", finalRefs("u1"))
	in3.Attributes = &[]services.AttrInput{{AttributeID: "at-1", Value: "Otra"}}
	p3, _, err := svc.Update(ctx, p.ID, in3)
	require.NoError(t, err)
	require.Len(t, p3.Attrs, 1)
	assert.NotEqual(t, firstID, p3.Attrs[0].ID)
	assert.Equal(t, "Otra", p3.Attrs[0].Value)
}

func TestDeleteCascadesAndClearsStorage(t *testing.T) {
	svc, mem := newProductService(t)
	ctx := context.Background()

	staged := stagedRef(t, mem, "temp-88-qq", "asset5")
	p, _, err := svc.Create(ctx, input("Silla", storage.ImageList{staged}))
	require.NoError(t, err)
	finalKey := storage.ObjectKey(p.ID, "asset5", "jpg")
	require.True(t, mem.Has(finalKey))

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(p.ID)
	assert.True(t, repos.NotFound(err))
	assert.False(t, mem.Has(finalKey), "product folder cleared")

	assert.True(t, repos.NotFound(svc.Delete(ctx, p.ID)), "second delete is a 404")
}
