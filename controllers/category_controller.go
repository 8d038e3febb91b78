package controllers

import (
	"catalog/models"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CategoryService interface {
	Create(ctx context.Context, in models.CreateCategoryInput) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type CategoryController struct {
	service CategoryService
}

func NewCategoryController(service CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

func (cc *CategoryController) CreateCategory(c *gin.Context) (int, gin.H, error) {
	var input models.CreateCategoryInput
	if err := bindJSON(c, &input); err != nil {
		return 0, nil, err
	}

	category, err := cc.service.Create(c.Request.Context(), input)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, ok(category), nil
}

func (cc *CategoryController) GetCategories(c *gin.Context) (int, gin.H, error) {
	categories, err := cc.service.List(c.Request.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, ok(categories), nil
}
