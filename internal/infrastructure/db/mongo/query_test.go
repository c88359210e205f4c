package mongo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

func TestSortSpec(t *testing.T) {
	allowed := map[string]bool{"name": true, "created_at": true}

	assert.Equal(t, bson.D{{Key: "name", Value: 1}, {Key: "created_at", Value: -1}}, sortSpec("name,-created_at", allowed))
	assert.Equal(t, bson.D{{Key: "name", Value: -1}}, sortSpec(" -name , password_hash", allowed))
	assert.Equal(t, defaultSort, sortSpec("", allowed))
	assert.Equal(t, defaultSort, sortSpec("$where", allowed))
}

func TestObjectID_MalformedIsNotFound(t *testing.T) {
	_, err := objectID("not-an-id", domain.ErrCourseNotFound)
	assert.True(t, errors.Is(err, domain.ErrCourseNotFound))

	oid := primitive.NewObjectID()
	got, err := objectID(oid.Hex(), domain.ErrCourseNotFound)
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestScopedFilter(t *testing.T) {
	id, owner := primitive.NewObjectID(), primitive.NewObjectID()

	f, err := scopedFilter(id.Hex(), "", domain.ErrReviewNotFound)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": id}, f)

	f, err = scopedFilter(id.Hex(), owner.Hex(), domain.ErrReviewNotFound)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"_id": id, "user": owner}, f)

	_, err = scopedFilter(id.Hex(), "bogus", domain.ErrReviewNotFound)
	assert.True(t, errors.Is(err, domain.ErrReviewNotFound))
}

func TestPageOptions(t *testing.T) {
	opts := pageOptions(ports.ListQuery{Page: 3, Limit: 10, Sort: "-name"}, bootcampSortFields)
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "name", Value: -1}}, opts.Sort)
}
