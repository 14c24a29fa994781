package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gogotex/books-gateway/internal/document"
	"github.com/gogotex/books-gateway/internal/document/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository is the store surface the gateway needs: one call per operation.
type Repository interface {
	Ping(ctx context.Context) error
	Insert(ctx context.Context, doc document.Document) (interface{}, error)
	FindAll(ctx context.Context) ([]document.Document, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields document.Document) (document.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Service defines the document operations used by the handler layer.
// Malformed input is reported with document.ErrInvalidBody or
// document.ErrInvalidID; every other error comes from the store.
type Service interface {
	Check(ctx context.Context) error
	Create(ctx context.Context, body []byte) (string, error)
	// Read returns the whole collection as a relaxed extended JSON array.
	Read(ctx context.Context) ([]byte, error)
	// Update reports whether the store modified a document.
	Update(ctx context.Context, id string, body []byte) (bool, error)
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// New returns a Service over repo.
func New(repo Repository) Service {
	return &gatewayService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller is responsible for creating the collection (and client) and passing it in.
func NewMongoService(col *mongo.Collection, timeout time.Duration) Service {
	return New(repository.NewMongoRepo(col, timeout))
}

type gatewayService struct {
	repo Repository
}

func (s *gatewayService) Check(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *gatewayService) Create(ctx context.Context, body []byte) (string, error) {
	doc, err := document.Parse(body)
	if err != nil {
		return "", err
	}
	id, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return document.IDString(id), nil
}

func (s *gatewayService) Read(ctx context.Context) ([]byte, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	return document.MarshalList(docs)
}

func (s *gatewayService) Update(ctx context.Context, id string, body []byte) (bool, error) {
	oid, err := document.ParseID(id)
	if err != nil {
		return false, err
	}
	fields, err := document.Parse(body)
	if err != nil {
		return false, err
	}
	res, err := s.repo.UpdateByID(ctx, oid, fields)
	if err != nil {
		return false, fmt.Errorf("update document %s: %w", id, err)
	}
	return res.Modified > 0, nil
}

func (s *gatewayService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := document.ParseID(id)
	if err != nil {
		return false, err
	}
	n, err := s.repo.DeleteByID(ctx, oid)
	if err != nil {
		return false, fmt.Errorf("delete document %s: %w", id, err)
	}
	return n > 0, nil
}
