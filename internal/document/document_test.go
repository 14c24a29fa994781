package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseKeepsFieldOrderAndNesting(t *testing.T) {
	d, err := Parse([]byte(`{"title":"A","year":2020,"meta":{"tags":["x","y"],"draft":false},"note":null}`))
	require.NoError(t, err)
	require.Len(t, d, 4)
	require.Equal(t, "title", d[0].Key)
	require.Equal(t, "A", d[0].Value)
	require.Equal(t, "year", d[1].Key)
	require.Equal(t, int32(2020), d[1].Value)
	require.Equal(t, "meta", d[2].Key)
	require.Equal(t, "note", d[3].Key)
	require.Nil(t, d[3].Value)
}

func TestParseAcceptsExtendedJSONIdentifier(t *testing.T) {
	d, err := Parse([]byte(`{"_id":{"$oid":"5f1d7f3b2c8e4a0012345678"},"title":"B"}`))
	require.NoError(t, err)
	id, ok := ID(d)
	require.True(t, ok)
	oid, ok := id.(primitive.ObjectID)
	require.True(t, ok)
	require.Equal(t, "5f1d7f3b2c8e4a0012345678", oid.Hex())
}

func TestParseRejectsNonObjects(t *testing.T) {
	for _, body := range []string{"", "   ", "[1,2]", `"text"`, "42", `{"title":`, "not json",
		`{"a":1}xyz`, `{"a":1}{"b":2}`, `{"a":1}]`, `{"a":99999999999999999999}`, `{"a":[-9223372036854775809]}`} {
		_, err := Parse([]byte(body))
		require.Error(t, err, "body %q", body)
		require.True(t, errors.Is(err, ErrInvalidBody), "body %q: %v", body, err)
	}
}

func TestParseIntegerWidths(t *testing.T) {
	d, err := Parse([]byte(`{"small":7,"big":9223372036854775807,"neg":-9223372036854775808,"frac":1.5,"exp":1e21}`))
	require.NoError(t, err)
	require.Equal(t, int32(7), d[0].Value)
	require.Equal(t, int64(9223372036854775807), d[1].Value)
	require.Equal(t, int64(-9223372036854775808), d[2].Value)
	require.Equal(t, 1.5, d[3].Value)
	require.Equal(t, 1e21, d[4].Value)
}

func TestParseAllowsSurroundingWhitespace(t *testing.T) {
	d, err := Parse([]byte("  \n{\"a\":1}\n\t "))
	require.NoError(t, err)
	require.Equal(t, bson.D{{Key: "a", Value: int32(1)}}, d)
}

func TestParseEmptyObject(t *testing.T) {
	d, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Len(t, d, 0)
}

func TestParseID(t *testing.T) {
	oid, err := ParseID("000000000000000000000000")
	require.NoError(t, err)
	require.Equal(t, primitive.NilObjectID, oid)

	for _, bad := range []string{"not-an-id", "", "12345", "zzzzzzzzzzzzzzzzzzzzzzzz", "0000000000000000000000000"} {
		_, err := ParseID(bad)
		require.Error(t, err, "id %q", bad)
		require.True(t, errors.Is(err, ErrInvalidID))
	}
}

func TestIDString(t *testing.T) {
	oid := primitive.NewObjectID()
	require.Equal(t, oid.Hex(), IDString(oid))
	require.Len(t, IDString(oid), 24)
	require.Equal(t, "custom", IDString("custom"))
	require.Equal(t, "7", IDString(int32(7)))
}

func TestMarshalListUsesExtendedJSONIdentifiers(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("5f1d7f3b2c8e4a0012345678")
	require.NoError(t, err)
	docs := []Document{
		{{Key: "_id", Value: oid}, {Key: "title", Value: "A"}, {Key: "year", Value: int32(2020)}},
		{{Key: "_id", Value: "plain"}, {Key: "tags", Value: bson.A{"x", bson.D{{Key: "y", Value: true}}}}},
	}

	out, err := MarshalList(docs)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	require.Equal(t, map[string]interface{}{"$oid": "5f1d7f3b2c8e4a0012345678"}, decoded[0]["_id"])
	require.Equal(t, "A", decoded[0]["title"])
	require.Equal(t, float64(2020), decoded[0]["year"])
	require.Equal(t, "plain", decoded[1]["_id"])
	require.Equal(t, []interface{}{"x", map[string]interface{}{"y": true}}, decoded[1]["tags"])
}

func TestMarshalListEmpty(t *testing.T) {
	out, err := MarshalList(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(out))
}
