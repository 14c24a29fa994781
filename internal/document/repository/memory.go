package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gogotex/books-gateway/internal/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrDuplicateID    = errors.New("duplicate key error: _id")
	ErrImmutableField = errors.New("performing an update on the path '_id' would modify the immutable field '_id'")
)

// MemoryRepo keeps the collection in process memory. It backs unit tests and
// the dev server and follows the store's observable behaviour: generated
// ObjectIDs, _id uniqueness, $set semantics and modified counts.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs []document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryRepo) Insert(ctx context.Context, doc document.Document) (interface{}, error) {
	stored, err := clone(doc)
	if err != nil {
		return nil, err
	}
	id, ok := document.ID(stored)
	if !ok {
		id = primitive.NewObjectID()
		stored = append(document.Document{{Key: document.IDField, Value: id}}, stored...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if existing, _ := document.ID(d); sameValue(existing, id) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateID, id)
		}
	}
	m.docs = append(m.docs, stored)
	return id, nil
}

// FindAll returns every document ordered by _id descending.
func (m *MemoryRepo) FindAll(ctx context.Context) ([]document.Document, error) {
	m.mu.RLock()
	out := make([]document.Document, 0, len(m.docs))
	for _, d := range m.docs {
		c, err := clone(d)
		if err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		out = append(out, c)
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := document.ID(out[i])
		b, _ := document.ID(out[j])
		return compareIDs(a, b) > 0
	})
	return out, nil
}

func (m *MemoryRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, fields document.Document) (document.UpdateResult, error) {
	set, err := clone(fields)
	if err != nil {
		return document.UpdateResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return document.UpdateResult{}, nil
	}
	d := m.docs[i]
	updated := make(document.Document, len(d))
	copy(updated, d)

	changed := false
	for _, f := range set {
		pos := -1
		for k, e := range updated {
			if e.Key == f.Key {
				pos = k
				break
			}
		}
		if pos >= 0 {
			if sameValue(updated[pos].Value, f.Value) {
				continue
			}
			if f.Key == document.IDField {
				return document.UpdateResult{}, ErrImmutableField
			}
			updated[pos].Value = f.Value
		} else {
			updated = append(updated, f)
		}
		changed = true
	}

	if !changed {
		return document.UpdateResult{Matched: 1}, nil
	}
	m.docs[i] = updated
	return document.UpdateResult{Matched: 1, Modified: 1}, nil
}

func (m *MemoryRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	m.docs = append(m.docs[:i], m.docs[i+1:]...)
	return 1, nil
}

func (m *MemoryRepo) indexOf(id primitive.ObjectID) int {
	for i, d := range m.docs {
		if existing, _ := document.ID(d); sameValue(existing, id) {
			return i
		}
	}
	return -1
}

// clone round-trips d through BSON so stored values carry the same Go types
// the driver would decode (int32/int64, bson.D, bson.A).
func clone(d document.Document) (document.Document, error) {
	raw, err := bson.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var out bson.D
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if out == nil {
		out = bson.D{}
	}
	return out, nil
}

// sameValue reports BSON equality, type included, which is what decides the
// store's modified count.
func sameValue(a, b interface{}) bool {
	ra, err := bson.Marshal(bson.D{{Key: "v", Value: a}})
	if err != nil {
		return false
	}
	rb, err := bson.Marshal(bson.D{{Key: "v", Value: b}})
	if err != nil {
		return false
	}
	return bytes.Equal(ra, rb)
}

// typeRank follows the store's cross-type sort order.
func typeRank(v interface{}) int {
	switch v.(type) {
	case nil, primitive.Null:
		return 1
	case int32, int64, float64, primitive.Decimal128:
		return 2
	case string, primitive.Symbol:
		return 3
	case bson.D, bson.M:
		return 4
	case bson.A:
		return 5
	case primitive.Binary:
		return 6
	case primitive.ObjectID:
		return 7
	case bool:
		return 8
	case primitive.DateTime, time.Time:
		return 9
	case primitive.Timestamp:
		return 10
	case primitive.Regex:
		return 11
	}
	return 12
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func compareIDs(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case primitive.ObjectID:
		bv := b.(primitive.ObjectID)
		return bytes.Compare(av[:], bv[:])
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case primitive.DateTime:
		if bv, ok := b.(primitive.DateTime); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	if ra == 2 {
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	}
	return 0
}
