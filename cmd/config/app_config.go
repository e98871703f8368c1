package config

import (
	"io"
	"os"
	"time"

	"wejv/internal/api/handlers"
	"wejv/internal/api/presenters"
	"wejv/internal/api/routes"
	"wejv/internal/middleware"
	"wejv/internal/utils"
	"wejv/pkg/category"
	"wejv/pkg/favorite"
	"wejv/pkg/jwt"
	"wejv/pkg/recipe"
	"wejv/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AppOptions struct {
	JWTSecret          string
	RateLimitPerSecond int // 0 disables the limiter
	ExposeErrorDetails bool
	AccessLog          io.Writer
}

// AppOptionsFromConfig reads the HTTP settings from the loaded configuration.
func AppOptionsFromConfig() AppOptions {
	return AppOptions{
		JWTSecret:          utils.GetConfig("JWT_SECRET"),
		RateLimitPerSecond: utils.GetConfigInt("RATE_LIMIT_PER_SECOND", 20),
		ExposeErrorDetails: utils.GetConfigBool("EXPOSE_ERROR_DETAILS"),
		AccessLog:          os.Stdout,
	}
}

func NewApp(db *gorm.DB, log *zap.Logger, opts AppOptions) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName: "wejv",
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	presenters.ExposeErrorDetails = opts.ExposeErrorDetails

	// request ids, access log and limiter
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "UTC",
			Output:     opts.AccessLog,
		}))
	}

	if opts.RateLimitPerSecond > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimitPerSecond,
			Expiration: 1 * time.Second,
		}))
	}

	// Repository
	categoryRepository := category.NewCategoryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db, categoryRepository)
	favoriteRepository := favorite.NewFavoriteRepository(db)
	userRepository := user.NewUserRepository(db)

	// Service
	jwtService := jwt.NewJWTService(opts.JWTSecret)
	recipeService := recipe.NewRecipeService(recipeRepository, categoryRepository, userRepository, validator, log.Named("recipe"))
	favoriteService := favorite.NewFavoriteService(favoriteRepository, recipeRepository, log.Named("favorite"))
	userService := user.NewUserService(userRepository, jwtService, validator, log.Named("user"))

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	userHandler := handlers.NewUserHandler(userService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		FavoriteHandler: favoriteHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
