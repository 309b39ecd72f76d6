package repository

import (
	"context"
	"fmt"
	"testing"

	"museum-backend/internal/database"
	"museum-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRepositoryListPaginatesAndCounts(t *testing.T) {
	db := newTestDB(t)
	repo := New[models.Tag](db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Tag{InternalName: fmt.Sprintf("tag-%d", i), Description: "d"}))
	}

	tags, total, err := repo.List(ctx, ListQuery{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, tags, 2)

	tags, _, err = repo.List(ctx, ListQuery{Page: 3, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestRepositoryFiltersAndPreloads(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	items := New[models.Item](db, "Translations")
	translations := New[models.ItemTranslation](db)

	require.NoError(t, New[models.Language](db).Create(ctx, &models.Language{ID: "eng", InternalName: "English"}))
	first := &models.Item{InternalName: "first", Type: "object"}
	second := &models.Item{InternalName: "second", Type: "monument"}
	require.NoError(t, items.Create(ctx, first))
	require.NoError(t, items.Create(ctx, second))
	require.NoError(t, translations.Create(ctx, &models.ItemTranslation{
		ItemID: first.ID, LanguageID: "eng", ContextID: "ctx", Name: "First", Description: "d",
	}))

	found, total, err := items.List(ctx, ListQuery{
		Page: 1, PerPage: 10,
		Filters:  map[string]any{"type": "object"},
		Includes: []string{"translations"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	require.Len(t, found[0].Translations, 1)
	assert.Equal(t, "First", found[0].Translations[0].Name)

	require.NoError(t, items.Delete(ctx, first.ID))
	_, rows, err := translations.List(ctx, ListQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestRepositoryNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := New[models.Context](db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, "missing", map[string]any{"internal_name": "x"}), ErrNotFound)
}

func TestRepositoryUpdateWritesNulls(t *testing.T) {
	db := newTestDB(t)
	repo := New[models.Partner](db)
	ctx := context.Background()

	legacy := "legacy-1"
	partner := &models.Partner{InternalName: "louvre", Type: "museum", BackwardCompatibility: &legacy}
	require.NoError(t, repo.Create(ctx, partner))

	require.NoError(t, repo.Update(ctx, partner.ID, map[string]any{"backward_compatibility": nil, "type": "institution"}))

	reloaded, err := repo.FindByID(ctx, partner.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.BackwardCompatibility)
	assert.Equal(t, "institution", reloaded.Type)
}

func TestRepositorySetFlagExclusive(t *testing.T) {
	db := newTestDB(t)
	repo := New[models.Language](db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Language{ID: "eng", InternalName: "English"}))
	require.NoError(t, repo.Create(ctx, &models.Language{ID: "ita", InternalName: "Italian"}))

	require.NoError(t, repo.SetFlag(ctx, "eng", "is_default", true, true))
	require.NoError(t, repo.SetFlag(ctx, "ita", "is_default", true, true))

	current, err := repo.FindOne(ctx, map[string]any{"is_default": true})
	require.NoError(t, err)
	assert.Equal(t, "ita", current.ID)

	require.NoError(t, repo.ClearFlag(ctx, "is_default"))
	_, err = repo.FindOne(ctx, map[string]any{"is_default": true})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.SetFlag(ctx, "xxx", "is_default", true, true), ErrNotFound)
}

func TestRepositoryAttachDetach(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	items := New[models.Item](db)
	tags := New[models.Tag](db)

	item := &models.Item{InternalName: "vase", Type: "object"}
	tag := &models.Tag{InternalName: "ceramic", Description: "Ceramics"}
	require.NoError(t, items.Create(ctx, item))
	require.NoError(t, tags.Create(ctx, tag))

	require.NoError(t, items.Attach(ctx, item.ID, "tags", tag))
	require.NoError(t, items.Attach(ctx, item.ID, "tags", tag))

	loaded, err := items.FindByID(ctx, item.ID, "tags")
	require.NoError(t, err)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, tag.ID, loaded.Tags[0].ID)

	require.NoError(t, items.Detach(ctx, item.ID, "tags", tag))
	loaded, err = items.FindByID(ctx, item.ID, "tags")
	require.NoError(t, err)
	assert.Empty(t, loaded.Tags)

	assert.ErrorIs(t, items.Attach(ctx, "missing", "tags", tag), ErrNotFound)
}

func TestLookupRepositoryCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	lookup := NewLookupRepository(db)
	provinces := New[models.Province](db)

	tuscany := &models.Province{InternalName: "Tuscany", CountryID: "ita"}
	require.NoError(t, provinces.Create(ctx, tuscany))

	n, err := lookup.Count(ctx, "provinces", map[string]any{"internal_name": "Tuscany", "country_id": "ita"}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = lookup.Count(ctx, "provinces", map[string]any{"internal_name": "tuscany"}, "")
	require.NoError(t, err)
	assert.Zero(t, n, "comparison is case-sensitive")

	n, err = lookup.Count(ctx, "provinces", map[string]any{"internal_name": "Tuscany"}, tuscany.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
