package recipe

import (
	"context"
	"errors"
	"testing"

	"wejv/domain"
	"wejv/internal/testdb"
	"wejv/internal/utils"
	"wejv/pkg/category"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuthors maps user ids to the author ids they publish as.
type stubAuthors map[uint]uint

func (s stubAuthors) AuthorIDForUser(_ context.Context, userID uint) (uint, bool, error) {
	authorID, ok := s[userID]
	return authorID, ok, nil
}

type failingAuthors struct{}

func (failingAuthors) AuthorIDForUser(context.Context, uint) (uint, bool, error) {
	return 0, false, errors.New("connection reset")
}

func newTestService(t *testing.T, authors AuthorLookup) RecipeService {
	t.Helper()
	db := testdb.New(t)
	categories := category.NewCategoryRepository(db)
	return NewRecipeService(
		NewRecipeRepository(db, categories),
		categories,
		authors,
		utils.Validator(),
		zap.NewNop(),
	)
}

func createSoep(t *testing.T, svc RecipeService) uint {
	t.Helper()
	id, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		RecipeFields: domain.RecipeFields{
			Name:        "Soep",
			PrepareTime: 20,
			PersonNum:   2,
			Ingredients: "400 g prei",
		},
		AuthorID: 5,
		Genres:   []string{"Hoofdgerecht"},
		Tags:     []string{"Snel"},
	})
	require.NoError(t, err)
	return id
}

func TestServiceCreateThenGet(t *testing.T) {
	svc := newTestService(t, stubAuthors{})
	ctx := context.Background()

	id := createSoep(t, svc)

	detail, found, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Soep", detail.Name)
	assert.Equal(t, []string{"Hoofdgerecht"}, detail.Genre)
	assert.Equal(t, []string{"Snel"}, detail.Tag)

	_, found, err = svc.GetRecipe(ctx, id+1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(t, stubAuthors{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  domain.CreateRecipeRequest
	}{
		{"missing name", domain.CreateRecipeRequest{RecipeFields: domain.RecipeFields{Name: "  "}, AuthorID: 1}},
		{"missing author", domain.CreateRecipeRequest{RecipeFields: domain.RecipeFields{Name: "Soep"}}},
		{"negative prepare time", domain.CreateRecipeRequest{RecipeFields: domain.RecipeFields{Name: "Soep", PrepareTime: -1}, AuthorID: 1}},
		{"comma in genre", domain.CreateRecipeRequest{RecipeFields: domain.RecipeFields{Name: "Soep"}, AuthorID: 1, Genres: []string{"Soep,Stoof"}}},
		{"empty tag", domain.CreateRecipeRequest{RecipeFields: domain.RecipeFields{Name: "Soep"}, AuthorID: 1, Tags: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRecipe(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, domain.IsCode(err, domain.CodeValidationFailed), err.Error())
		})
	}
}

func TestServiceListRecipesValidation(t *testing.T) {
	svc := newTestService(t, stubAuthors{})
	ctx := context.Background()

	_, err := svc.ListRecipes(ctx, domain.ListRecipesRequest{Start: -1})
	assert.True(t, domain.IsCode(err, domain.CodeValidationFailed))

	_, err = svc.ListRecipes(ctx, domain.ListRecipesRequest{
		Filters: map[domain.FilterCategory][]uint{"season": {1}},
	})
	assert.True(t, domain.IsCode(err, domain.CodeValidationFailed))

	_, err = svc.ListRecipes(ctx, domain.ListRecipesRequest{
		Filters: map[domain.FilterCategory][]uint{domain.CategoryGenre: {0}},
	})
	assert.True(t, domain.IsCode(err, domain.CodeValidationFailed))
}

func TestServiceListRecipesDefaultsPaging(t *testing.T) {
	svc := newTestService(t, stubAuthors{})
	createSoep(t, svc)

	res, err := svc.ListRecipes(context.Background(), domain.ListRecipesRequest{Count: 1000, Sort: 42})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Soep", res.Data[0].Name)
}

func TestNormalizeListRequest(t *testing.T) {
	req, err := normalizeListRequest(domain.ListRecipesRequest{Search: "  prei ", Count: 0, Sort: 0})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPageSize, req.Count)
	assert.Equal(t, domain.SortCreatedDesc, req.Sort)
	assert.Equal(t, "prei", req.Search)

	req, err = normalizeListRequest(domain.ListRecipesRequest{Count: 500, Sort: domain.SortNameAsc})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageSize, req.Count)
	assert.Equal(t, domain.SortNameAsc, req.Sort)
}

func TestServiceGetRecipeRejectsZeroID(t *testing.T) {
	svc := newTestService(t, stubAuthors{})

	_, _, err := svc.GetRecipe(context.Background(), 0)
	assert.True(t, domain.IsCode(err, domain.CodeValidationFailed))
}

func TestServiceDeleteAuthorization(t *testing.T) {
	const owner, stranger, admin = 1, 2, 3
	svc := newTestService(t, stubAuthors{owner: 5, stranger: 8})
	ctx := context.Background()

	id := createSoep(t, svc)

	res := svc.DeleteRecipe(ctx, id, domain.Requester{UserID: stranger, Role: domain.RoleUser})
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, domain.CodeForbidden, res.Err.Code)
	assert.Equal(t, "Not authorized", res.Message)

	res = svc.DeleteRecipe(ctx, id, domain.Requester{UserID: 0, Role: domain.RoleUser})
	assert.False(t, res.Success)

	res = svc.DeleteRecipe(ctx, id, domain.Requester{UserID: owner, Role: domain.RoleUser})
	assert.True(t, res.Success)
	assert.Equal(t, id, res.ID)

	_, found, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.False(t, found)

	other := createSoep(t, svc)
	res = svc.DeleteRecipe(ctx, other, domain.Requester{UserID: admin, Role: domain.RoleAdmin})
	assert.True(t, res.Success)
}

func TestServiceDeleteMissingRecipe(t *testing.T) {
	svc := newTestService(t, stubAuthors{})

	res := svc.DeleteRecipe(context.Background(), 99, domain.Requester{UserID: 1, Role: domain.RoleAdmin})
	assert.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, domain.CodeNotFound, res.Err.Code)
	assert.Equal(t, domain.MessageRecipeNotFound, res.Message)
}

func TestServiceUpdateRecipe(t *testing.T) {
	svc := newTestService(t, stubAuthors{1: 5})
	ctx := context.Background()

	id := createSoep(t, svc)

	update := domain.UpdateRecipeRequest{
		ID:           id,
		RecipeFields: domain.RecipeFields{Name: "Preisoep", PrepareTime: 25, PersonNum: 4},
		Genres:       []string{"Voorgerecht"},
		Tags:         []string{"Snel"},
	}

	res := svc.UpdateRecipe(ctx, update, domain.Requester{UserID: 2, Role: domain.RoleUser})
	require.False(t, res.Success)
	assert.Equal(t, domain.CodeForbidden, res.Err.Code)

	res = svc.UpdateRecipe(ctx, update, domain.Requester{UserID: 1, Role: domain.RoleUser})
	require.True(t, res.Success, res.Message)

	detail, _, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Preisoep", detail.Name)
	assert.Equal(t, []string{"Voorgerecht"}, detail.Genre)
	assert.Equal(t, uint(5), detail.AuthorID)

	update.Name = ""
	res = svc.UpdateRecipe(ctx, update, domain.Requester{UserID: 1, Role: domain.RoleUser})
	require.False(t, res.Success)
	assert.Equal(t, domain.CodeValidationFailed, res.Err.Code)
}

func TestServiceUpdateValidatesBeforeLookup(t *testing.T) {
	svc := newTestService(t, failingAuthors{})

	res := svc.UpdateRecipe(context.Background(), domain.UpdateRecipeRequest{
		ID:           999,
		RecipeFields: domain.RecipeFields{Name: "  "},
	}, domain.Requester{UserID: 1, Role: domain.RoleUser})
	require.False(t, res.Success)
	require.NotNil(t, res.Err)
	assert.Equal(t, domain.CodeValidationFailed, res.Err.Code)

	res = svc.UpdateRecipe(context.Background(), domain.UpdateRecipeRequest{
		ID:           999,
		RecipeFields: domain.RecipeFields{Name: "Preisoep"},
	}, domain.Requester{UserID: 1, Role: domain.RoleAdmin})
	require.False(t, res.Success)
	assert.Equal(t, domain.CodeNotFound, res.Err.Code)
}

func TestServiceAuthorLookupFailure(t *testing.T) {
	svc := newTestService(t, failingAuthors{})
	ctx := context.Background()

	id := createSoep(t, svc)

	res := svc.DeleteRecipe(ctx, id, domain.Requester{UserID: 1, Role: domain.RoleUser})
	require.False(t, res.Success)
	assert.Equal(t, domain.CodeDatabaseError, res.Err.Code)
	assert.Equal(t, domain.MessageFailedProcessRequest, res.Message)
}

func TestServiceFetchFilterOptions(t *testing.T) {
	svc := newTestService(t, stubAuthors{})
	createSoep(t, svc)

	options, err := svc.FetchFilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.FilterOption{{ID: 1, Name: "Hoofdgerecht"}}, options[domain.CategoryGenre])
	assert.Equal(t, []domain.FilterOption{{ID: 1, Name: "Snel"}}, options[domain.CategoryTag])
	assert.Len(t, options[domain.CategoryPrepareTimeGroup], 4)
}

func TestServiceCreateRecipeForRequester(t *testing.T) {
	svc := newTestService(t, stubAuthors{1: 5})
	ctx := context.Background()

	id, err := svc.CreateRecipeFor(ctx, domain.CreateRecipeRequest{
		RecipeFields: domain.RecipeFields{Name: "Tompouce"},
	}, domain.Requester{UserID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	detail, _, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(5), detail.AuthorID)

	_, err = svc.CreateRecipeFor(ctx, domain.CreateRecipeRequest{
		RecipeFields: domain.RecipeFields{Name: "Tompouce"},
		AuthorID:     9,
	}, domain.Requester{UserID: 1, Role: domain.RoleUser})
	assert.True(t, domain.IsCode(err, domain.CodeForbidden))

	_, err = svc.CreateRecipeFor(ctx, domain.CreateRecipeRequest{
		RecipeFields: domain.RecipeFields{Name: "Tompouce"},
	}, domain.Requester{UserID: 2, Role: domain.RoleUser})
	assert.True(t, domain.IsCode(err, domain.CodeValidationFailed), "no linked author and none named")
}
