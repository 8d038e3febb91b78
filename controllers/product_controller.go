package controllers

import (
	"catalog/models"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ProductService interface {
	Create(ctx context.Context, in models.CreateProductInput) (*models.Product, error)
	List(ctx context.Context) ([]models.ProductDetail, error)
	Get(ctx context.Context, id string) (*models.ProductDetail, error)
	Update(ctx context.Context, id string, in models.UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductController struct {
	service ProductService
}

func NewProductController(service ProductService) *ProductController {
	return &ProductController{service: service}
}

func (pc *ProductController) CreateProduct(c *gin.Context) (int, gin.H, error) {
	var input models.CreateProductInput
	if err := bindJSON(c, &input); err != nil {
		return 0, nil, err
	}

	product, err := pc.service.Create(c.Request.Context(), input)
	if err != nil {
		return 0, nil, err
	}

	zerolog.Ctx(c.Request.Context()).Info().
		Str("id", product.ID.Hex()).
		Str("name", product.Name).
		Msg("Product created")
	return http.StatusCreated, ok(product), nil
}

func (pc *ProductController) GetProducts(c *gin.Context) (int, gin.H, error) {
	products, err := pc.service.List(c.Request.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, ok(products), nil
}

func (pc *ProductController) GetProductByID(c *gin.Context) (int, gin.H, error) {
	product, err := pc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, ok(product), nil
}

func (pc *ProductController) UpdateProduct(c *gin.Context) (int, gin.H, error) {
	var input models.UpdateProductInput
	if err := bindJSON(c, &input); err != nil {
		return 0, nil, err
	}

	product, err := pc.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		return 0, nil, err
	}

	zerolog.Ctx(c.Request.Context()).Info().
		Str("id", product.ID.Hex()).
		Float64("price", product.Price).
		Float64("stock", product.Stock).
		Msg("Product updated")
	return http.StatusOK, ok(product), nil
}

func (pc *ProductController) DeleteProduct(c *gin.Context) (int, gin.H, error) {
	id := c.Param("id")
	if err := pc.service.Delete(c.Request.Context(), id); err != nil {
		return 0, nil, err
	}

	zerolog.Ctx(c.Request.Context()).Info().Str("id", id).Msg("Product deleted")
	return http.StatusOK, gin.H{"success": true, "message": models.MsgProductDeleted}, nil
}
