package store

import (
	"catalog/models"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCategoryStore struct {
	categories *mongo.Collection
	timeout    time.Duration
}

func NewMongoCategoryStore(categories *mongo.Collection, timeout time.Duration) *MongoCategoryStore {
	return &MongoCategoryStore{categories: categories, timeout: timeout}
}

func (s *MongoCategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate category: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	category := *c
	category.ID = primitive.NewObjectID()
	category.CreatedAt = mongoNow()

	if _, err := s.categories.InsertOne(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return &category, nil
}

func (s *MongoCategoryStore) FindAll(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}
