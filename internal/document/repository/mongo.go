package repository

import (
	"context"
	"time"

	"github.com/gogotex/books-gateway/internal/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements the collection operations on a MongoDB collection.
// Each call is bounded by timeout; no retries are attempted.
type MongoRepo struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(col *mongo.Collection, timeout time.Duration) *MongoRepo {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MongoRepo{col: col, timeout: timeout}
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	admin := m.col.Database().Client().Database("admin")
	return admin.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (m *MongoRepo) Insert(ctx context.Context, doc document.Document) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return res.InsertedID, nil
}

func (m *MongoRepo) FindAll(ctx context.Context) ([]document.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: document.IDField, Value: -1}})
	cur, err := m.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []document.Document{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, fields document.Document) (document.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	filter := bson.D{{Key: document.IDField, Value: id}}
	update := bson.D{{Key: "$set", Value: fields}}
	res, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return document.UpdateResult{}, err
	}
	return document.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (m *MongoRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	res, err := m.col.DeleteOne(ctx, bson.D{{Key: document.IDField, Value: id}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
