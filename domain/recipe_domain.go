package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	MessageSuccessGetFilters      = "success get filters"
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetFilters      = "failed to get filters"
	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageInvalidRecipeID       = "Invalid recipe ID"
	MessageRecipeNotFound        = "Recipe not found"
	MessageInvalidFilter         = "invalid filter"
	MessageInvalidImage          = "Invalid image format"

	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrInvalidRecipeID  = errors.New("invalid recipe id")
	ErrUnknownCategory  = errors.New("unknown filter category")
	ErrInvalidFilterID  = errors.New("filter ids must be positive")
	ErrMissingAuthor    = errors.New("author id or author name is required")
	ErrMissingReference = errors.New("referenced category does not exist")
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

// FilterCategory names a dimension recipes can be filtered on.
type FilterCategory string

const (
	CategoryGenre            FilterCategory = "genre"
	CategoryTag              FilterCategory = "tag"
	CategoryAuthor           FilterCategory = "author"
	CategoryPrepareTimeGroup FilterCategory = "prepareTimeGroup"
)

// FilterCategories lists every category in the order filter options are reported.
var FilterCategories = []FilterCategory{
	CategoryGenre,
	CategoryAuthor,
	CategoryTag,
	CategoryPrepareTimeGroup,
}

func (c FilterCategory) Valid() bool {
	switch c {
	case CategoryGenre, CategoryTag, CategoryAuthor, CategoryPrepareTimeGroup:
		return true
	}
	return false
}

type SortOrder int

const (
	SortCreatedAsc SortOrder = iota + 1
	SortCreatedDesc
	SortNameAsc
	SortNameDesc
)

type (
	FilterOption struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	ListRecipesRequest struct {
		Filters    map[FilterCategory][]uint `json:"filters"`
		FavoriteOf uint                      `json:"-"`
		Search     string                    `json:"search" validate:"max=200"`
		Start      int                       `json:"start" validate:"min=0"`
		Count      int                       `json:"count" validate:"min=0"`
		Sort       SortOrder                 `json:"sort"`

		FavoritesOnly bool `json:"favorites_only"`
	}

	RecipeCard struct {
		ID          uint     `json:"id"`
		Name        string   `json:"name"`
		AuthorID    uint     `json:"author_id"`
		Author      *string  `json:"author"`
		Genre       []string `json:"genre"`
		Tag         []string `json:"tag"`
		PrepareTime int      `json:"prepareTime"`
		Img         []byte   `json:"img"`
		IsFavorite  *bool    `json:"is_favorite,omitempty"`
	}

	RecipeListResponse struct {
		Total int64        `json:"total"`
		Data  []RecipeCard `json:"data"`
	}

	RecipeDetail struct {
		ID             uint      `json:"id"`
		AuthorID       uint      `json:"author_id"`
		Author         *string   `json:"author"`
		Name           string    `json:"name"`
		PrepareTime    int       `json:"prepareTime"`
		PersonNum      int       `json:"personNum"`
		Description    string    `json:"description"`
		Preparation    string    `json:"preparation"`
		Ingredients    string    `json:"ingredients"`
		IngredientList []string  `json:"ingredient_list"`
		Genre          []string  `json:"genre"`
		Tag            []string  `json:"tag"`
		Img            []byte    `json:"img"`
		CreatedAt      time.Time `json:"ctime"`
	}

	RecipeFields struct {
		Name        string `json:"name" form:"name" validate:"required,max=255"`
		PrepareTime int    `json:"prepare_time" form:"prepare_time" validate:"min=0,max=10080"`
		PersonNum   int    `json:"person_num" form:"person_num" validate:"min=0,max=1000"`
		Description string `json:"description" form:"description"`
		Preparation string `json:"preparation" form:"preparation"`
		Ingredients string `json:"ingredients" form:"ingredients"`
	}

	CreateRecipeRequest struct {
		RecipeFields
		AuthorID   uint     `json:"author_id" form:"author_id"`
		AuthorName string   `json:"author_name" form:"author_name" validate:"max=255"`
		Genres     []string `json:"genres" validate:"dive,required,max=100,nocomma"`
		Tags       []string `json:"tags" validate:"dive,required,max=100,nocomma"`
		Image      []byte   `json:"-"`
	}

	UpdateRecipeRequest struct {
		ID uint `json:"id" validate:"required"`
		RecipeFields
		Genres []string `json:"genres" validate:"dive,required,max=100,nocomma"`
		Tags   []string `json:"tags" validate:"dive,required,max=100,nocomma"`
		// Image replaces the stored image only when non-nil.
		Image []byte `json:"-"`
	}

	CreateRecipeResponse struct {
		ID uint `json:"id"`
	}
)

// SplitIngredients turns the stored semicolon-delimited ingredient text into trimmed lines.
func SplitIngredients(raw string) []string {
	lines := make([]string, 0)
	for _, part := range strings.Split(raw, ";") {
		if line := strings.TrimSpace(part); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
