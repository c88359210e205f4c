package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

const collectionReviews = "reviews"

var reviewSortFields = map[string]bool{
	"title":      true,
	"rating":     true,
	"created_at": true,
}

// ReviewRepository implements ports.ReviewRepository using MongoDB.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Text      string             `bson:"text"`
	Rating    int                `bson:"rating"`
	Bootcamp  primitive.ObjectID `bson:"bootcamp"`
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *reviewDoc) toDomain() *domain.Review {
	return &domain.Review{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Text:      d.Text,
		Rating:    d.Rating,
		Bootcamp:  hexOrEmpty(d.Bootcamp),
		User:      hexOrEmpty(d.User),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// Create inserts the review. A second review of the same bootcamp by the same
// user fails with domain.ErrDuplicateReview.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	bootcamp, err := objectID(rv.Bootcamp, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}
	owner, err := primitive.ObjectIDFromHex(rv.User)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid owner id", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reviewDoc{
		Title:     rv.Title,
		Text:      rv.Text,
		Rating:    rv.Rating,
		Bootcamp:  bootcamp,
		User:      owner,
		CreatedAt: rv.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := objectID(id, domain.ErrReviewNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reviewDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Review, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}
	out, err := r.find(ctx, bson.M{}, pageOptions(q, reviewSortFields))
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ReviewRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Review, error) {
	bootcamp, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return []*domain.Review{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"bootcamp": bootcamp}, options.Find().SetSort(defaultSort))
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Review, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	out := make([]*domain.Review, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id, ownerID string, patch ports.ReviewPatch) (*domain.Review, error) {
	filter, err := scopedFilter(id, ownerID, domain.ErrReviewNotFound)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	setIf(set, "title", patch.Title)
	setIf(set, "text", patch.Text)
	setIf(set, "rating", patch.Rating)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reviewDoc
	if len(set) == 0 {
		err = r.col.FindOne(ctx, filter).Decode(&doc)
	} else {
		err = r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := scopedFilter(id, ownerID, domain.ErrReviewNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	return deleteByBootcamp(ctx, r.col, bootcampID)
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (float64, error) {
	return averageOf(ctx, r.col, bootcampID, "rating")
}

// EnsureIndexes creates the one-review-per-user-per-bootcamp index.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bootcamp", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
