package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoIndex implements Index on top of a MongoDB collection, for a shared
// query server deployment where the document index outlives any single
// process.
type MongoIndex struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoIndex connects to uri and returns an Index backed by
// database.documents.
func NewMongoIndex(ctx context.Context, uri, database string) (*MongoIndex, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoIndex{
		client:     client,
		collection: client.Database(database).Collection("documents"),
	}, nil
}

// Put inserts or replaces a document record.
func (idx *MongoIndex) Put(ctx context.Context, rec *DocumentRecord) error {
	opts := options.Replace().SetUpsert(true)
	_, err := idx.collection.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts)
	return err
}

// Get retrieves a document record by id.
func (idx *MongoIndex) Get(ctx context.Context, id string) (*DocumentRecord, error) {
	var rec DocumentRecord
	err := idx.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a document record.
func (idx *MongoIndex) Delete(ctx context.Context, id string) error {
	_, err := idx.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// List returns every indexed document record, most recently indexed first.
func (idx *MongoIndex) List(ctx context.Context) ([]*DocumentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "indexed_at", Value: -1}})
	cur, err := idx.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*DocumentRecord
	for cur.Next(ctx) {
		var rec DocumentRecord
		if err := cur.Decode(&rec); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, cur.Err()
}

// Close disconnects the underlying MongoDB client.
func (idx *MongoIndex) Close(ctx context.Context) error {
	return idx.client.Disconnect(ctx)
}

// Ensure MongoIndex implements Index.
var _ Index = (*MongoIndex)(nil)
