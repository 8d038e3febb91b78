package routes

import (
	"catalog/controllers"
	"catalog/errs"
	"catalog/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Controllers struct {
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Health     *controllers.HealthController
}

// AuthOptions decides whether mutating routes require an admin token.
type AuthOptions struct {
	Enabled bool
	Secret  []byte
}

// NewEngine creates a gin engine with the middleware every route shares.
// ErrorHandler sits outside Recoverer so a recovered panic is answered with
// the same envelope as any other error.
func NewEngine(logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(),
		middleware.Recoverer(),
	)
	return r
}

func RegisterRoutes(r *gin.Engine, ctrl Controllers, auth AuthOptions) {
	r.GET("/healthz", controllers.Handle(ctrl.Health.Healthz))
	r.NoRoute(controllers.Handle(func(*gin.Context) (int, gin.H, error) {
		return 0, nil, errs.NewNotFoundError("Route not found")
	}))

	api := r.Group("/api")
	{
		api.GET("/products", controllers.Handle(ctrl.Products.GetProducts))
		api.GET("/products/:id", controllers.Handle(ctrl.Products.GetProductByID))
		api.GET("/categories", controllers.Handle(ctrl.Categories.GetCategories))

		admin := api.Group("/")
		if auth.Enabled {
			admin.Use(middleware.AuthMiddleware(auth.Secret), middleware.AdminMiddleware())
		}
		{
			admin.POST("/products", controllers.Handle(ctrl.Products.CreateProduct))
			admin.PATCH("/products/:id", controllers.Handle(ctrl.Products.UpdateProduct))
			admin.PUT("/products/:id", controllers.Handle(ctrl.Products.UpdateProduct))
			admin.DELETE("/products/:id", controllers.Handle(ctrl.Products.DeleteProduct))

			admin.POST("/categories", controllers.Handle(ctrl.Categories.CreateCategory))
		}
	}
}
