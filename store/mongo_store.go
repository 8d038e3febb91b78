package store

import (
	"catalog/models"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore implements ProductStore on a MongoDB collection.
type MongoStore struct {
	products   *mongo.Collection
	categories string
	timeout    time.Duration
}

// NewMongoStore creates a product store over the given collections. Every
// call is bounded by timeout on top of the caller's context.
func NewMongoStore(products *mongo.Collection, categories *mongo.Collection, timeout time.Duration) *MongoStore {
	return &MongoStore{
		products:   products,
		categories: categories.Name(),
		timeout:    timeout,
	}
}

func (s *MongoStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate product: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := mongoNow()
	product := *p
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := s.products.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return &product, nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]models.ProductDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.products.Aggregate(ctx, s.detailPipeline(bson.D{}))
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	products := []models.ProductDetail{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cursor, err := s.products.Aggregate(ctx, s.detailPipeline(bson.D{{Key: "_id", Value: id}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("failed to find product by ID: %w", err)
		}
		return nil, ErrProductNotFound
	}

	var product models.ProductDetail
	if err := cursor.Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("revalidate product %s: %w", id.Hex(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	set := bson.M{"updatedAt": mongoNow()}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err := s.products.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &updated, nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.products.Database().Client().Ping(ctx, readpref.Primary())
}

// detailPipeline matches products, sorts them newest first and replaces
// categoryId with the referenced category document. A dangling reference
// leaves categoryId unset.
func (s *MongoStore) detailPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: s.categories},
			{Key: "localField", Value: "categoryId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categoryId"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "categoryId", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$categoryId", 0}}}},
		}}},
	}
}

// mongoNow is the current time at the millisecond precision BSON dates keep.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
