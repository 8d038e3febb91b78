package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ProductsCollection   = "products"
	CategoriesCollection = "categories"
)

type Collections struct {
	Products   *mongo.Collection
	Categories *mongo.Collection
}

// ConnectMongo connects to uri and pings the primary, failing early when the
// server is unreachable.
func ConnectMongo(ctx context.Context, uri, dbName string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(dbName), nil
}

func InitCollections(db *mongo.Database) Collections {
	return Collections{
		Products:   db.Collection(ProductsCollection),
		Categories: db.Collection(CategoriesCollection),
	}
}
