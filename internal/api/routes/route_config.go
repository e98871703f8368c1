package routes

import (
	"wejv/internal/api/handlers"
	"wejv/internal/middleware"
	"wejv/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	FavoriteHandler handlers.FavoriteHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Filters()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Get("/me/favorites", c.Middleware.AuthMiddleware(c.JWTService), c.FavoriteHandler.GetFavorites)
	}
}

func (c *Config) Filters() {
	c.App.Get("/api/v1/filters", c.RecipeHandler.GetFilterOptions)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	recipes.Post("/search", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.SearchRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)

	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", auth, c.FavoriteHandler.ToggleFavorite)
	recipes.Get("/:id/favorite", auth, c.FavoriteHandler.IsFavorite)
}
