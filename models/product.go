package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MsgNameAndCategoryRequired = "name and categoryId are required"
	MsgInvalidCategoryID       = "Invalid categoryId"
	MsgInvalidPrice            = "Invalid price"
	MsgInvalidStock            = "Invalid stock"
	MsgStockBelowZero          = "Stock cannot go below 0"
	MsgProductNotFound         = "Product not found"
	MsgProductDeleted          = "Product deleted"
)

// Specs always carries all three keys; unset ones are empty strings.
type Specs struct {
	CPU     string `bson:"cpu" json:"cpu"`
	RAM     string `bson:"ram" json:"ram"`
	Storage string `bson:"storage" json:"storage"`
}

type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	CategoryID primitive.ObjectID `bson:"categoryId" json:"categoryId" validate:"required"`
	Brand      string             `bson:"brand" json:"brand"`
	Price      float64            `bson:"price" json:"price" validate:"gte=0"`
	Stock      float64            `bson:"stock" json:"stock" validate:"gte=0"`
	Specs      Specs              `bson:"specs" json:"specs"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CategoryRef is the part of a category inlined into a product on reads.
type CategoryRef struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// ProductDetail is a product with its categoryId resolved to the category's
// name. Category is nil when the referenced category no longer exists.
type ProductDetail struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Category  *CategoryRef       `bson:"categoryId,omitempty" json:"categoryId"`
	Brand     string             `bson:"brand" json:"brand"`
	Price     float64            `bson:"price" json:"price"`
	Stock     float64            `bson:"stock" json:"stock"`
	Specs     Specs              `bson:"specs" json:"specs"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewProductDetail resolves p against category, which may be nil.
func NewProductDetail(p Product, category *Category) ProductDetail {
	d := ProductDetail{
		ID:        p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.Price,
		Stock:     p.Stock,
		Specs:     p.Specs,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if category != nil {
		d.Category = &CategoryRef{ID: category.ID, Name: category.Name}
	}
	return d
}

// ProductPatch lists the fields an update may change. A nil field is left
// untouched.
type ProductPatch struct {
	Price *float64 `validate:"omitempty,gte=0"`
	Stock *float64 `validate:"omitempty,gte=0"`
}

// CreateProductInput is the request body of a create call. Every field keeps
// track of whether it was sent and whether it had the expected JSON type, so
// the service can tell a missing price from a string price.
type CreateProductInput struct {
	Name       Optional[string]     `json:"name"`
	CategoryID Optional[string]     `json:"categoryId"`
	Brand      Optional[string]     `json:"brand"`
	Price      Optional[float64]    `json:"price"`
	Stock      Optional[float64]    `json:"stock"`
	Specs      Optional[SpecsInput] `json:"specs"`
}

type SpecsInput struct {
	CPU     Optional[string] `json:"cpu"`
	RAM     Optional[string] `json:"ram"`
	Storage Optional[string] `json:"storage"`
}

// UpdateProductInput is the request body of an update call. Only price and
// stock are updatable; anything else in the body is ignored.
type UpdateProductInput struct {
	Price Optional[float64] `json:"price"`
	Stock Optional[float64] `json:"stock"`
}
