package handlers

import (
	"wejv/domain"
	"wejv/internal/api/presenters"
	"wejv/internal/middleware"
	"wejv/pkg/favorite"

	"github.com/gofiber/fiber/v2"
)

type (
	FavoriteHandler interface {
		ToggleFavorite(c *fiber.Ctx) error
		IsFavorite(c *fiber.Ctx) error
		GetFavorites(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		favoriteService favorite.FavoriteService
	}
)

func NewFavoriteHandler(favoriteService favorite.FavoriteService) FavoriteHandler {
	return &favoriteHandler{
		favoriteService: favoriteService,
	}
}

func (h *favoriteHandler) ToggleFavorite(c *fiber.Ctx) error {
	recipeID, err := c.ParamsInt("id")
	if err != nil || recipeID <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidRecipeID, domain.ErrInvalidRecipeID)
	}

	res, err := h.favoriteService.ToggleFavorite(c.Context(), middleware.Requester(c).UserID, uint(recipeID))
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageFailedToggleFavorite)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFavorite)
}

func (h *favoriteHandler) IsFavorite(c *fiber.Ctx) error {
	recipeID, err := c.ParamsInt("id")
	if err != nil || recipeID <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidRecipeID, domain.ErrInvalidRecipeID)
	}

	res, err := h.favoriteService.IsFavorite(c.Context(), middleware.Requester(c).UserID, uint(recipeID))
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageFailedCheckFavorite)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCheckFavorite)
}

func (h *favoriteHandler) GetFavorites(c *fiber.Ctx) error {
	res, err := h.favoriteService.ListFavorites(c.Context(), middleware.Requester(c).UserID)
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageFailedGetFavorites)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}
