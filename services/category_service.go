package services

import (
	"catalog/models"
	"catalog/store"
	"context"
	"fmt"
	"strings"
)

type CategoryService struct {
	store store.CategoryStore
}

func NewCategoryService(s store.CategoryStore) *CategoryService {
	return &CategoryService{store: s}
}

func (s *CategoryService) Create(ctx context.Context, in models.CreateCategoryInput) (*models.Category, error) {
	category := &models.Category{Name: strings.TrimSpace(in.Name.Or(""))}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}
