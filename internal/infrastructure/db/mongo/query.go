package mongo

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

var defaultSort = bson.D{{Key: "created_at", Value: -1}}

// objectID parses a hex id. Malformed ids resolve to notFound, the same as an
// id that matches no document.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

// scopedFilter matches the document by id and, when ownerID is set, by owner.
func scopedFilter(id, ownerID string, notFound error) (bson.M, error) {
	oid, err := objectID(id, notFound)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"_id": oid}
	if ownerID != "" {
		owner, err := objectID(ownerID, notFound)
		if err != nil {
			return nil, err
		}
		filter["user"] = owner
	}
	return filter, nil
}

// sortSpec turns "name,-created_at" into a sort document. Fields outside
// allowed are ignored.
func sortSpec(raw string, allowed map[string]bool) bson.D {
	var out bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		dir := 1
		if strings.HasPrefix(field, "-") {
			field, dir = field[1:], -1
		}
		if allowed[field] {
			out = append(out, bson.E{Key: field, Value: dir})
		}
	}
	if len(out) == 0 {
		return defaultSort
	}
	return out
}

func pageOptions(q ports.ListQuery, allowed map[string]bool) *options.FindOptions {
	return options.Find().
		SetSort(sortSpec(q.Sort, allowed)).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))
}

func hexOrEmpty(oid primitive.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

func setIf[T any](set bson.M, key string, v *T) {
	if v != nil {
		set[key] = *v
	}
}
