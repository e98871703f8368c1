package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"wejv/domain"
	"wejv/internal/api/presenters"
	"wejv/internal/middleware"
	"wejv/pkg/recipe"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type (
	RecipeHandler interface {
		GetFilterOptions(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}

	// recipeForm is the multipart body of create and update. Genres and tags arrive as
	// JSON arrays of names.
	recipeForm struct {
		Name        string `form:"name"`
		PrepareTime int    `form:"prepare_time"`
		PersonNum   int    `form:"person_num"`
		Description string `form:"description"`
		Preparation string `form:"preparation"`
		Ingredients string `form:"ingredients"`
		AuthorID    uint   `form:"author_id"`
		AuthorName  string `form:"author_name"`
		Genres      string `form:"genres"`
		Tags        string `form:"tags"`
	}
)

const maxImageBytes = 2 << 20

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (f recipeForm) fields() domain.RecipeFields {
	return domain.RecipeFields{
		Name:        f.Name,
		PrepareTime: f.PrepareTime,
		PersonNum:   f.PersonNum,
		Description: f.Description,
		Preparation: f.Preparation,
		Ingredients: f.Ingredients,
	}
}

func decodeNames(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	names := make([]string, 0)
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (f recipeForm) names() ([]string, []string, error) {
	genres, err := decodeNames(f.Genres)
	if err != nil {
		return nil, nil, err
	}
	tags, err := decodeNames(f.Tags)
	if err != nil {
		return nil, nil, err
	}
	return genres, tags, nil
}

// readImage returns the uploaded WebP image, or nil when the request carries none.
// A multipart body that cannot be parsed is rejected rather than read as "no image".
func readImage(c *fiber.Ctx) ([]byte, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, fasthttp.ErrNoMultipartForm) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewValidationError(domain.MessageFailedBodyRequest, err)
	}
	files := form.File["image"]
	if len(files) == 0 {
		return nil, nil
	}
	return readWebP(files[0])
}

func readWebP(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > maxImageBytes {
		return nil, domain.NewValidationError(domain.MessageInvalidImage, nil)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes || !mimetype.Detect(data).Is("image/webp") {
		return nil, domain.NewValidationError(domain.MessageInvalidImage, nil)
	}
	return data, nil
}

func (h *recipeHandler) GetFilterOptions(c *fiber.Ctx) error {
	res, err := h.recipeService.FetchFilterOptions(c.Context())
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageFailedGetFilters)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFilters)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	req := new(domain.ListRecipesRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if req.FavoritesOnly {
		requester := middleware.Requester(c)
		if requester.UserID == 0 {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		req.FavoriteOf = requester.UserID
	}

	res, err := h.recipeService.ListRecipes(c.Context(), *req)
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageFailedGetRecipes)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID, err := c.ParamsInt("id")
	if err != nil || recipeID <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidRecipeID, domain.ErrInvalidRecipeID)
	}

	res, found, err := h.recipeService.GetRecipe(c.Context(), uint(recipeID))
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageFailedGetRecipeDetail)
	}
	if !found {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageRecipeNotFound, domain.ErrRecipeNotFound)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	form := new(recipeForm)

	if err := c.BodyParser(form); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	genres, tags, err := form.names()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	image, err := readImage(c)
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageInvalidImage)
	}

	req := domain.CreateRecipeRequest{
		RecipeFields: form.fields(),
		AuthorID:     form.AuthorID,
		AuthorName:   form.AuthorName,
		Genres:       genres,
		Tags:         tags,
		Image:        image,
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	id, err := h.recipeService.CreateRecipeFor(c.Context(), req, middleware.Requester(c))
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageFailedCreateRecipe)
	}

	return presenters.SuccessResponse(c, domain.CreateRecipeResponse{ID: id}, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := c.ParamsInt("id")
	if err != nil || recipeID <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidRecipeID, domain.ErrInvalidRecipeID)
	}

	form := new(recipeForm)
	if err := c.BodyParser(form); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	genres, tags, err := form.names()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	image, err := readImage(c)
	if err != nil {
		return presenters.AppErrorResponse(c, err, domain.MessageInvalidImage)
	}

	req := domain.UpdateRecipeRequest{
		ID:           uint(recipeID),
		RecipeFields: form.fields(),
		Genres:       genres,
		Tags:         tags,
		Image:        image,
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res := h.recipeService.UpdateRecipe(c.Context(), req, middleware.Requester(c))
	if !res.Success {
		return presenters.AppErrorResponse(c, res.Err, domain.MessageFailedUpdateRecipe)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := c.ParamsInt("id")
	if err != nil || recipeID <= 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidRecipeID, domain.ErrInvalidRecipeID)
	}

	res := h.recipeService.DeleteRecipe(c.Context(), uint(recipeID), middleware.Requester(c))
	if !res.Success {
		return presenters.AppErrorResponse(c, res.Err, domain.MessageFailedDeleteRecipe)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}
