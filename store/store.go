// Package store persists products and categories.
//
// Two implementations are provided: MongoStore, backed by a MongoDB database,
// and MemoryStore, used for local runs without a database and in tests. Both
// re-check the shared model validation on every write.
package store

import (
	"catalog/models"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStore is the persistence contract of the product resource.
type ProductStore interface {
	// Create validates and inserts p, assigning its id and timestamps.
	Create(ctx context.Context, p *models.Product) (*models.Product, error)

	// FindAll returns every product, newest first, with its category resolved.
	// Returns an empty slice if there are none.
	FindAll(ctx context.Context) ([]models.ProductDetail, error)

	// FindByID returns ErrProductNotFound if no product has the given id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error)

	// Update applies the fields set in patch and returns the updated product.
	// Returns ErrProductNotFound if no product has the given id.
	Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error)

	// Delete returns ErrProductNotFound if no product has the given id.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	// FindAll returns every category ordered by name.
	FindAll(ctx context.Context) ([]models.Category, error)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
