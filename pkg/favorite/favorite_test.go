package favorite

import (
	"context"
	"testing"

	"wejv/domain"
	"wejv/entities"
	"wejv/internal/testdb"
	"wejv/pkg/category"
	"wejv/pkg/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newFavoriteService(t *testing.T) (FavoriteService, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	recipes := recipe.NewRecipeRepository(db, category.NewCategoryRepository(db))
	return NewFavoriteService(NewFavoriteRepository(db), recipes, zap.NewNop()), db
}

func seedMenu(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	menu := entities.Menu{Name: name, AuthorID: 1}
	require.NoError(t, db.Create(&menu).Error)
	return menu.ID
}

func TestToggleFavorite(t *testing.T) {
	svc, db := newFavoriteService(t)
	ctx := context.Background()
	menuID := seedMenu(t, db, "Poffertjes")

	status, err := svc.IsFavorite(ctx, 4, menuID)
	require.NoError(t, err)
	assert.False(t, status.IsFavorite)

	status, err = svc.ToggleFavorite(ctx, 4, menuID)
	require.NoError(t, err)
	assert.True(t, status.IsFavorite)
	assert.Equal(t, menuID, status.MenuID)

	status, err = svc.IsFavorite(ctx, 4, menuID)
	require.NoError(t, err)
	assert.True(t, status.IsFavorite)

	status, err = svc.ToggleFavorite(ctx, 4, menuID)
	require.NoError(t, err)
	assert.False(t, status.IsFavorite)

	status, err = svc.IsFavorite(ctx, 4, menuID)
	require.NoError(t, err)
	assert.False(t, status.IsFavorite)

	var count int64
	require.NoError(t, db.Model(&entities.Favorite{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleFavoriteIsPerUser(t *testing.T) {
	svc, db := newFavoriteService(t)
	ctx := context.Background()
	menuID := seedMenu(t, db, "Kroket")

	_, err := svc.ToggleFavorite(ctx, 1, menuID)
	require.NoError(t, err)

	status, err := svc.IsFavorite(ctx, 2, menuID)
	require.NoError(t, err)
	assert.False(t, status.IsFavorite)
}

func TestToggleFavoriteErrors(t *testing.T) {
	svc, _ := newFavoriteService(t)
	ctx := context.Background()

	_, err := svc.ToggleFavorite(ctx, 0, 1)
	assert.True(t, domain.IsCode(err, domain.CodeValidationFailed))

	_, err = svc.IsFavorite(ctx, 1, 0)
	assert.True(t, domain.IsCode(err, domain.CodeValidationFailed))

	_, err = svc.ToggleFavorite(ctx, 1, 404)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestListFavorites(t *testing.T) {
	svc, db := newFavoriteService(t)
	ctx := context.Background()
	first := seedMenu(t, db, "Hachee")
	second := seedMenu(t, db, "Zuurkool")

	res, err := svc.ListFavorites(ctx, 6)
	require.NoError(t, err)
	assert.Empty(t, res.MenuIDs)

	_, err = svc.ToggleFavorite(ctx, 6, first)
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, 6, second)
	require.NoError(t, err)

	res, err = svc.ListFavorites(ctx, 6)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{first, second}, res.MenuIDs)

	_, err = svc.ListFavorites(ctx, 0)
	assert.True(t, domain.IsCode(err, domain.CodeValidationFailed))
}
