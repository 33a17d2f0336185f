package mongodb

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/menuseed/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Adapter struct {
	client *mongo.Client
}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Connect(ctx context.Context, url string) error {
	clientOpts := options.Client().ApplyURI(url)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	a.client = client
	return nil
}

func (a *Adapter) Close() error {
	if a.client != nil {
		return a.client.Disconnect(context.Background())
	}
	return nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	if a.client == nil {
		return fmt.Errorf("database not connected")
	}
	return a.client.Ping(ctx, nil)
}

func (a *Adapter) database(databaseID string) (*mongo.Database, error) {
	if a.client == nil {
		return nil, fmt.Errorf("database not connected")
	}
	return a.client.Database(databaseID), nil
}

func (a *Adapter) collection(databaseID, collectionID string) (*mongo.Collection, error) {
	db, err := a.database(databaseID)
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionID), nil
}

func (a *Adapter) ListDocuments(ctx context.Context, databaseID, collectionID string) ([]types.Document, error) {
	coll, err := a.collection(databaseID, collectionID)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", collectionID, err)
	}
	defer cursor.Close(ctx)

	var docs []types.Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode document in %s: %w", collectionID, err)
		}
		docs = append(docs, toDocument(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (a *Adapter) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, fields map[string]interface{}) (*types.Document, error) {
	coll, err := a.collection(databaseID, collectionID)
	if err != nil {
		return nil, err
	}

	doc := bson.M{"_id": documentID}
	for k, v := range fields {
		if k == "_id" {
			return nil, fmt.Errorf("field name _id is reserved")
		}
		doc[k] = v
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document in %s: %w", collectionID, err)
	}

	return &types.Document{ID: documentID, Fields: fields}, nil
}

// DeleteDocument removes by string id, falling back to an ObjectID for
// documents written by other tools.
func (a *Adapter) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	coll, err := a.collection(databaseID, collectionID)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": documentID})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if res.DeletedCount > 0 {
		return nil
	}

	if oid, err := primitive.ObjectIDFromHex(documentID); err == nil {
		res, err = coll.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("failed to delete document %s: %w", documentID, err)
		}
		if res.DeletedCount > 0 {
			return nil
		}
	}

	return fmt.Errorf("document %s not found in %s", documentID, collectionID)
}

func (a *Adapter) CountDocuments(ctx context.Context, databaseID, collectionID string) (int64, error) {
	coll, err := a.collection(databaseID, collectionID)
	if err != nil {
		return 0, err
	}
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count documents in %s: %w", collectionID, err)
	}
	return count, nil
}
