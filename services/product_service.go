// Package services holds the product and category operations: input checks,
// defaults, and the translation of store results into client errors.
package services

import (
	"catalog/errs"
	"catalog/models"
	"catalog/store"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductService struct {
	store store.ProductStore
}

func NewProductService(s store.ProductStore) *ProductService {
	return &ProductService{store: s}
}

// Create checks the input, fills in defaults and stores the product.
// No store call is made when the input is rejected.
func (s *ProductService) Create(ctx context.Context, in models.CreateProductInput) (*models.Product, error) {
	product, err := newProduct(in)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// List returns every product, newest first, with category names resolved.
func (s *ProductService) List(ctx context.Context) ([]models.ProductDetail, error) {
	products, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.ProductDetail, error) {
	oid, err := parseProductID(id)
	if err != nil {
		return nil, err
	}

	product, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, productError(err, "fetch", id)
	}
	return product, nil
}

// Update changes only the fields present in the input. A present field is
// checked even when its value is null.
func (s *ProductService) Update(ctx context.Context, id string, in models.UpdateProductInput) (*models.Product, error) {
	var patch models.ProductPatch
	if in.Price.Set {
		if !in.Price.Valid || in.Price.Value < 0 {
			return nil, errs.NewValidationError(models.MsgInvalidPrice)
		}
		price := in.Price.Value
		patch.Price = &price
	}
	if in.Stock.Set {
		if !in.Stock.Valid || in.Stock.Value < 0 {
			return nil, errs.NewValidationError(models.MsgStockBelowZero)
		}
		stock := in.Stock.Value
		patch.Stock = &stock
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	oid, err := parseProductID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, oid, patch)
	if err != nil {
		return nil, productError(err, "update", id)
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := parseProductID(id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, oid); err != nil {
		return productError(err, "delete", id)
	}
	return nil
}

func newProduct(in models.CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name.Or(""))
	categoryHex := in.CategoryID.Or("")
	if name == "" || categoryHex == "" {
		return nil, errs.NewValidationError(models.MsgNameAndCategoryRequired)
	}
	categoryID, err := primitive.ObjectIDFromHex(categoryHex)
	if err != nil {
		return nil, errs.NewValidationError(models.MsgInvalidCategoryID)
	}
	if !in.Price.Set || !in.Price.Valid || in.Price.Value < 0 {
		return nil, errs.NewValidationError(models.MsgInvalidPrice)
	}
	if !in.Stock.Set || !in.Stock.Valid || in.Stock.Value < 0 {
		return nil, errs.NewValidationError(models.MsgInvalidStock)
	}

	specs := in.Specs.Or(models.SpecsInput{})
	product := &models.Product{
		Name:       name,
		CategoryID: categoryID,
		Brand:      in.Brand.Or(""),
		Price:      in.Price.Value,
		Stock:      in.Stock.Value,
		Specs: models.Specs{
			CPU:     specs.CPU.Or(""),
			RAM:     specs.RAM.Or(""),
			Storage: specs.Storage.Or(""),
		},
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// parseProductID treats a malformed id like an unknown one.
func parseProductID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.NewNotFoundError(models.MsgProductNotFound)
	}
	return oid, nil
}

// productError maps a store miss to the 404 the client sees and wraps
// anything else.
func productError(err error, action, id string) error {
	if errors.Is(err, store.ErrProductNotFound) {
		return errs.NewNotFoundError(models.MsgProductNotFound)
	}
	return fmt.Errorf("failed to %s product with ID %s: %w", action, id, err)
}
