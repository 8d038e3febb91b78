// Package app wires stores, services and controllers into an HTTP server.
package app

import (
	"catalog/config"
	"catalog/controllers"
	"catalog/database"
	"catalog/routes"
	"catalog/services"
	"catalog/store"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

type Dependencies struct {
	Products   store.ProductStore
	Categories store.CategoryStore
	Pinger     store.Pinger
	Logger     zerolog.Logger
}

// NewMongoDependencies builds the stores on db, bounding each store call by
// timeout.
func NewMongoDependencies(db *mongo.Database, timeout time.Duration, logger zerolog.Logger) *Dependencies {
	collections := database.InitCollections(db)
	products := store.NewMongoStore(collections.Products, collections.Categories, timeout)
	return &Dependencies{
		Products:   products,
		Categories: store.NewMongoCategoryStore(collections.Categories, timeout),
		Pinger:     products,
		Logger:     logger,
	}
}

// NewMemoryDependencies builds in-memory stores, for local runs without a
// database and for tests.
func NewMemoryDependencies(logger zerolog.Logger) *Dependencies {
	categories := store.NewMemoryCategoryStore()
	products := store.NewMemoryStore(categories)
	return &Dependencies{
		Products:   products,
		Categories: categories,
		Pinger:     products,
		Logger:     logger,
	}
}

// SetupHttpHandler builds the gin engine with every route registered.
func SetupHttpHandler(deps *Dependencies, auth routes.AuthOptions) *gin.Engine {
	engine := routes.NewEngine(deps.Logger)
	routes.RegisterRoutes(engine, routes.Controllers{
		Products:   controllers.NewProductController(services.NewProductService(deps.Products)),
		Categories: controllers.NewCategoryController(services.NewCategoryService(deps.Categories)),
		Health:     controllers.NewHealthController(deps.Pinger),
	}, auth)
	return engine
}

func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	gin.SetMode(cfg.Server.Mode)
	handler := SetupHttpHandler(deps, routes.AuthOptions{
		Enabled: cfg.Auth.Enabled,
		Secret:  []byte(cfg.Auth.Secret),
	})

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Server.Timeout.Read,
		ReadHeaderTimeout: cfg.Server.Timeout.Read,
		WriteTimeout:      cfg.Server.Timeout.Write,
		IdleTimeout:       cfg.Server.Timeout.Idle,
	}
}
