package recipe

import (
	"context"
	"errors"
	"strings"

	"wejv/domain"
	"wejv/pkg/category"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type (
	RecipeService interface {
		FetchFilterOptions(ctx context.Context) (map[domain.FilterCategory][]domain.FilterOption, error)
		ListRecipes(ctx context.Context, req domain.ListRecipesRequest) (domain.RecipeListResponse, error)
		GetRecipe(ctx context.Context, id uint) (domain.RecipeDetail, bool, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (uint, error)
		CreateRecipeFor(ctx context.Context, req domain.CreateRecipeRequest, requester domain.Requester) (uint, error)
		UpdateRecipe(ctx context.Context, req domain.UpdateRecipeRequest, requester domain.Requester) domain.MutationResult
		DeleteRecipe(ctx context.Context, id uint, requester domain.Requester) domain.MutationResult
	}

	// AuthorLookup resolves the author a registered user publishes as.
	AuthorLookup interface {
		AuthorIDForUser(ctx context.Context, userID uint) (uint, bool, error)
	}

	recipeService struct {
		recipeRepository   RecipeRepository
		categoryRepository category.CategoryRepository
		authors            AuthorLookup
		validator          *validator.Validate
		log                *zap.Logger
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	categoryRepository category.CategoryRepository,
	authors AuthorLookup,
	validator *validator.Validate,
	log *zap.Logger,
) RecipeService {
	return &recipeService{
		recipeRepository:   recipeRepository,
		categoryRepository: categoryRepository,
		authors:            authors,
		validator:          validator,
		log:                log,
	}
}

func (s *recipeService) FetchFilterOptions(ctx context.Context) (map[domain.FilterCategory][]domain.FilterOption, error) {
	options, err := s.categoryRepository.FetchFilterOptions(ctx)
	if err != nil {
		s.log.Error("fetch filter options", zap.Error(err))
		return nil, domain.NewPersistenceError(domain.MessageFailedGetFilters, err)
	}
	return options, nil
}

func normalizeListRequest(req domain.ListRecipesRequest) (domain.ListRecipesRequest, error) {
	if req.Start < 0 {
		return req, domain.NewValidationError(domain.MessageInvalidFilter, errors.New("start must not be negative"))
	}

	switch {
	case req.Count <= 0:
		req.Count = domain.DefaultPageSize
	case req.Count > domain.MaxPageSize:
		req.Count = domain.MaxPageSize
	}

	if req.Sort < domain.SortCreatedAsc || req.Sort > domain.SortNameDesc {
		req.Sort = domain.SortCreatedDesc
	}

	req.Search = strings.TrimSpace(req.Search)

	for filter, ids := range req.Filters {
		if !filter.Valid() {
			return req, domain.NewValidationError(domain.MessageInvalidFilter, domain.ErrUnknownCategory)
		}
		for _, id := range ids {
			if id == 0 {
				return req, domain.NewValidationError(domain.MessageInvalidFilter, domain.ErrInvalidFilterID)
			}
		}
	}

	return req, nil
}

func (s *recipeService) ListRecipes(ctx context.Context, req domain.ListRecipesRequest) (domain.RecipeListResponse, error) {
	req, err := normalizeListRequest(req)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return domain.RecipeListResponse{}, domain.NewValidationError(domain.MessageInvalidFilter, err)
	}

	cards, total, err := s.recipeRepository.ListCards(ctx, req)
	if err != nil {
		s.log.Error("list recipes", zap.Error(err), zap.String("search", req.Search))
		return domain.RecipeListResponse{}, domain.NewPersistenceError(domain.MessageFailedGetRecipes, err)
	}

	return domain.RecipeListResponse{
		Total: total,
		Data:  cards,
	}, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id uint) (domain.RecipeDetail, bool, error) {
	if id == 0 {
		return domain.RecipeDetail{}, false, domain.NewValidationError(domain.MessageInvalidRecipeID, domain.ErrInvalidRecipeID)
	}

	detail, err := s.recipeRepository.FindDetail(ctx, id)
	if err != nil {
		s.log.Error("get recipe", zap.Error(err), zap.Uint("recipe_id", id))
		return domain.RecipeDetail{}, false, domain.NewPersistenceError(domain.MessageFailedGetRecipeDetail, err)
	}
	if detail == nil {
		return domain.RecipeDetail{}, false, nil
	}

	return *detail, true, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest) (uint, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.AuthorName = strings.TrimSpace(req.AuthorName)

	if err := s.validator.Struct(req); err != nil {
		return 0, domain.NewValidationError(domain.MessageFailedCreateRecipe, err)
	}
	if req.AuthorID == 0 && req.AuthorName == "" {
		return 0, domain.NewValidationError(domain.MessageFailedCreateRecipe, domain.ErrMissingAuthor)
	}

	id, err := s.recipeRepository.CreateMenu(ctx, req)
	if err != nil {
		s.log.Error("create recipe", zap.Error(err), zap.String("name", req.Name))
		return 0, domain.NewPersistenceError(domain.MessageFailedCreateRecipe, err)
	}

	s.log.Info("recipe created", zap.Uint("recipe_id", id), zap.Uint("author_id", req.AuthorID))
	return id, nil
}

// CreateRecipeFor publishes under the requester's linked author unless the request names one.
// Only admins may publish under an explicit author id.
func (s *recipeService) CreateRecipeFor(ctx context.Context, req domain.CreateRecipeRequest, requester domain.Requester) (uint, error) {
	if req.AuthorID != 0 && !requester.IsAdmin() {
		return 0, domain.NewForbiddenError()
	}

	if req.AuthorID == 0 && strings.TrimSpace(req.AuthorName) == "" {
		authorID, ok, err := s.authors.AuthorIDForUser(ctx, requester.UserID)
		if err != nil {
			s.log.Error("lookup requester author", zap.Error(err), zap.Uint("user_id", requester.UserID))
			return 0, domain.NewPersistenceError(domain.MessageFailedCreateRecipe, err)
		}
		if ok {
			req.AuthorID = authorID
		}
	}

	return s.CreateRecipe(ctx, req)
}

// authorize allows admins, and users whose linked author wrote the recipe.
func (s *recipeService) authorize(ctx context.Context, recipeAuthorID uint, requester domain.Requester) *domain.AppError {
	if requester.IsAdmin() {
		return nil
	}
	if requester.UserID == 0 {
		return domain.NewForbiddenError()
	}

	authorID, ok, err := s.authors.AuthorIDForUser(ctx, requester.UserID)
	if err != nil {
		s.log.Error("lookup requester author", zap.Error(err), zap.Uint("user_id", requester.UserID))
		return domain.NewPersistenceError(domain.MessageFailedProcessRequest, err)
	}
	if !ok || authorID != recipeAuthorID {
		return domain.NewForbiddenError()
	}
	return nil
}

// loadForWrite checks the recipe exists and the requester may change it.
func (s *recipeService) loadForWrite(ctx context.Context, id uint, requester domain.Requester, failMessage string) *domain.AppError {
	if id == 0 {
		return domain.NewValidationError(domain.MessageInvalidRecipeID, domain.ErrInvalidRecipeID)
	}

	authorID, found, err := s.recipeRepository.FindAuthorID(ctx, id)
	if err != nil {
		s.log.Error("load recipe", zap.Error(err), zap.Uint("recipe_id", id))
		return domain.NewPersistenceError(failMessage, err)
	}
	if !found {
		return domain.NewNotFoundError(domain.MessageRecipeNotFound)
	}

	return s.authorize(ctx, authorID, requester)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, req domain.UpdateRecipeRequest, requester domain.Requester) domain.MutationResult {
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validator.Struct(req); err != nil {
		return domain.Failed(domain.NewValidationError(domain.MessageFailedUpdateRecipe, err))
	}
	if appErr := s.loadForWrite(ctx, req.ID, requester, domain.MessageFailedUpdateRecipe); appErr != nil {
		return domain.Failed(appErr)
	}

	if err := s.recipeRepository.UpdateMenu(ctx, req); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return domain.Failed(domain.NewNotFoundError(domain.MessageRecipeNotFound))
		}
		s.log.Error("update recipe", zap.Error(err), zap.Uint("recipe_id", req.ID))
		return domain.Failed(domain.NewPersistenceError(domain.MessageFailedUpdateRecipe, err))
	}

	return domain.Succeeded(req.ID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint, requester domain.Requester) domain.MutationResult {
	if appErr := s.loadForWrite(ctx, id, requester, domain.MessageFailedDeleteRecipe); appErr != nil {
		return domain.Failed(appErr)
	}

	if err := s.recipeRepository.DeleteMenu(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return domain.Failed(domain.NewNotFoundError(domain.MessageRecipeNotFound))
		}
		s.log.Error("delete recipe", zap.Error(err), zap.Uint("recipe_id", id))
		return domain.Failed(domain.NewPersistenceError(domain.MessageFailedDeleteRecipe, err))
	}

	s.log.Info("recipe deleted", zap.Uint("recipe_id", id), zap.Uint("user_id", requester.UserID))
	return domain.Succeeded(id)
}
