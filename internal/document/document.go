package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the distinguished identifier field of every stored document.
const IDField = "_id"

var (
	ErrInvalidBody = errors.New("invalid document body")
	ErrInvalidID   = errors.New("invalid document id")
)

// Document is one schema-less record of the collection. Field order is kept
// as received and values stay BSON-typed so identifiers survive a round trip.
type Document = bson.D

// UpdateResult mirrors the driver's matched/modified counters.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Parse decodes a request body into a Document. The body is read as relaxed
// extended JSON, so plain JSON objects and {"$oid": ...} style wrappers are
// both accepted. Anything other than exactly one JSON object is rejected, as
// are integer literals outside the int64 range.
func Parse(raw []byte) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidBody)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidBody)
	}
	// UnmarshalExtJSON stops after the first value and ignores trailing bytes.
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidBody)
	}
	if err := checkIntegers(trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	var d bson.D
	if err := bson.UnmarshalExtJSON(trimmed, false, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if d == nil {
		d = bson.D{}
	}
	return d, nil
}

// checkIntegers rejects integer literals that would otherwise be stored as
// doubles.
func checkIntegers(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		n, ok := tok.(json.Number)
		if !ok || strings.ContainsAny(n.String(), ".eE") {
			continue
		}
		if _, err := n.Int64(); err != nil {
			return fmt.Errorf("integer %s does not fit in 64 bits", n)
		}
	}
}

// ParseID parses a 24 character hex identifier.
func ParseID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: '%s' is not a valid ObjectId, it must be a 12-byte input or a 24-character hex string", ErrInvalidID, hex)
	}
	return oid, nil
}

// ID returns the identifier of d, if present.
func ID(d Document) (interface{}, bool) {
	for _, e := range d {
		if e.Key == IDField {
			return e.Value, true
		}
	}
	return nil, false
}

// IDString renders an identifier the way create responses report it.
func IDString(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	}
	return fmt.Sprint(id)
}

// MarshalList renders docs as a JSON array using relaxed extended JSON, so
// identifiers come out as {"$oid": "..."} rather than bare strings.
func MarshalList(docs []Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, d := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := bson.MarshalExtJSON(d, false, false)
		if err != nil {
			return nil, fmt.Errorf("marshal document %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
