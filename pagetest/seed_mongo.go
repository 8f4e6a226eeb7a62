package pagetest

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// SeedMongo rebuilds the collection from the dataset. Users are stored as
// whole documents with their orders embedded, which is the document-native
// shape of the relationship.
func SeedMongo(ctx context.Context, coll *mongo.Collection, dataset Dataset) error {
	if err := coll.Drop(ctx); err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}

	docs := make([]any, 0, len(dataset.Users))
	for _, u := range dataset.Users {
		docs = append(docs, u)
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert documents: %w", err)
	}

	return nil
}
