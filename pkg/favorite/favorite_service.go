package favorite

import (
	"context"

	"wejv/domain"
	"wejv/pkg/recipe"

	"go.uber.org/zap"
)

type (
	FavoriteService interface {
		ToggleFavorite(ctx context.Context, userID, menuID uint) (domain.FavoriteStatusResponse, error)
		IsFavorite(ctx context.Context, userID, menuID uint) (domain.FavoriteStatusResponse, error)
		ListFavorites(ctx context.Context, userID uint) (domain.FavoriteListResponse, error)
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		recipeRepository   recipe.RecipeRepository
		log                *zap.Logger
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, recipeRepository recipe.RecipeRepository, log *zap.Logger) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		recipeRepository:   recipeRepository,
		log:                log,
	}
}

func validIDs(userID, menuID uint) *domain.AppError {
	if userID == 0 || menuID == 0 {
		return domain.NewValidationError(domain.MessageInvalidFavoriteIDs, nil)
	}
	return nil
}

func (s *favoriteService) ToggleFavorite(ctx context.Context, userID, menuID uint) (domain.FavoriteStatusResponse, error) {
	if appErr := validIDs(userID, menuID); appErr != nil {
		return domain.FavoriteStatusResponse{}, appErr
	}

	exists, err := s.recipeRepository.MenuExists(ctx, menuID)
	if err != nil {
		s.log.Error("check recipe for favorite", zap.Error(err), zap.Uint("recipe_id", menuID))
		return domain.FavoriteStatusResponse{}, domain.NewPersistenceError(domain.MessageFailedToggleFavorite, err)
	}
	if !exists {
		return domain.FavoriteStatusResponse{}, domain.NewNotFoundError(domain.MessageRecipeNotFound)
	}

	isFavorite, err := s.favoriteRepository.Toggle(ctx, userID, menuID)
	if err != nil {
		s.log.Error("toggle favorite", zap.Error(err), zap.Uint("user_id", userID), zap.Uint("recipe_id", menuID))
		return domain.FavoriteStatusResponse{}, domain.NewPersistenceError(domain.MessageFailedToggleFavorite, err)
	}

	return domain.FavoriteStatusResponse{MenuID: menuID, IsFavorite: isFavorite}, nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID, menuID uint) (domain.FavoriteStatusResponse, error) {
	if appErr := validIDs(userID, menuID); appErr != nil {
		return domain.FavoriteStatusResponse{}, appErr
	}

	isFavorite, err := s.favoriteRepository.Exists(ctx, userID, menuID)
	if err != nil {
		s.log.Error("check favorite", zap.Error(err), zap.Uint("user_id", userID), zap.Uint("recipe_id", menuID))
		return domain.FavoriteStatusResponse{}, domain.NewPersistenceError(domain.MessageFailedCheckFavorite, err)
	}

	return domain.FavoriteStatusResponse{MenuID: menuID, IsFavorite: isFavorite}, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID uint) (domain.FavoriteListResponse, error) {
	if userID == 0 {
		return domain.FavoriteListResponse{}, domain.NewValidationError(domain.MessageInvalidFavoriteIDs, nil)
	}

	ids, err := s.favoriteRepository.ListMenuIDs(ctx, userID)
	if err != nil {
		s.log.Error("list favorites", zap.Error(err), zap.Uint("user_id", userID))
		return domain.FavoriteListResponse{}, domain.NewPersistenceError(domain.MessageFailedGetFavorites, err)
	}

	return domain.FavoriteListResponse{MenuIDs: ids}, nil
}
