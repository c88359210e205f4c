package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

const (
	collectionBootcamps = "bootcamps"

	// publisherIndex enforces one bootcamp per non-admin owner. Only
	// exclusive bootcamps carry the publisher field.
	publisherIndex = "publisher_unique"
)

var bootcampSortFields = map[string]bool{
	"name":           true,
	"created_at":     true,
	"average_cost":   true,
	"average_rating": true,
}

// BootcampRepository implements ports.BootcampRepository using MongoDB.
type BootcampRepository struct {
	col *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{col: db.Collection(collectionBootcamps)}
}

type bootcampDoc struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	Name          string              `bson:"name"`
	Slug          string              `bson:"slug"`
	Description   string              `bson:"description"`
	Website       string              `bson:"website,omitempty"`
	Phone         string              `bson:"phone,omitempty"`
	Email         string              `bson:"email,omitempty"`
	Address       domain.Address      `bson:"address"`
	Careers       []string            `bson:"careers"`
	AverageRating float64             `bson:"average_rating,omitempty"`
	AverageCost   float64             `bson:"average_cost,omitempty"`
	Housing       bool                `bson:"housing"`
	JobAssistance bool                `bson:"job_assistance"`
	JobGuarantee  bool                `bson:"job_guarantee"`
	AcceptGI      bool                `bson:"accept_gi"`
	User          primitive.ObjectID  `bson:"user"`
	Publisher     *primitive.ObjectID `bson:"publisher,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
}

func (d *bootcampDoc) toDomain() *domain.Bootcamp {
	return &domain.Bootcamp{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Slug:          d.Slug,
		Description:   d.Description,
		Website:       d.Website,
		Phone:         d.Phone,
		Email:         d.Email,
		Address:       d.Address,
		Careers:       d.Careers,
		AverageRating: d.AverageRating,
		AverageCost:   d.AverageCost,
		Housing:       d.Housing,
		JobAssistance: d.JobAssistance,
		JobGuarantee:  d.JobGuarantee,
		AcceptGI:      d.AcceptGI,
		User:          hexOrEmpty(d.User),
		CreatedAt:     d.CreatedAt.UTC(),
		Exclusive:     d.Publisher != nil,
	}
}

func (r *BootcampRepository) Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	owner, err := primitive.ObjectIDFromHex(b.User)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid owner id", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bootcampDoc{
		Name:          b.Name,
		Slug:          b.Slug,
		Description:   b.Description,
		Website:       b.Website,
		Phone:         b.Phone,
		Email:         b.Email,
		Address:       b.Address,
		Careers:       b.Careers,
		Housing:       b.Housing,
		JobAssistance: b.JobAssistance,
		JobGuarantee:  b.JobGuarantee,
		AcceptGI:      b.AcceptGI,
		User:          owner,
		CreatedAt:     b.CreatedAt,
	}
	if b.Exclusive {
		doc.Publisher = &owner
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), publisherIndex) {
				return nil, domain.ErrAlreadyPublished
			}
			return nil, fmt.Errorf("%w: bootcamp name already taken", domain.ErrConflict)
		}
		return nil, fmt.Errorf("insert bootcamp: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BootcampRepository) FindByID(ctx context.Context, id string) (*domain.Bootcamp, error) {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bootcampDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBootcampNotFound
		}
		return nil, fmt.Errorf("find bootcamp: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BootcampRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count bootcamps: %w", err)
	}

	cur, err := r.col.Find(ctx, bson.M{}, pageOptions(q, bootcampSortFields))
	if err != nil {
		return nil, 0, fmt.Errorf("list bootcamps: %w", err)
	}
	var docs []bootcampDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode bootcamps: %w", err)
	}

	out := make([]*domain.Bootcamp, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, total, nil
}

func (r *BootcampRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"user": owner})
}

// Update applies patch to the bootcamp. With a non-empty ownerID the update
// only matches when the stored owner is still ownerID.
func (r *BootcampRepository) Update(ctx context.Context, id, ownerID string, patch ports.BootcampPatch) (*domain.Bootcamp, error) {
	filter, err := scopedFilter(id, ownerID, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	setIf(set, "name", patch.Name)
	setIf(set, "slug", patch.Slug)
	setIf(set, "description", patch.Description)
	setIf(set, "website", patch.Website)
	setIf(set, "phone", patch.Phone)
	setIf(set, "email", patch.Email)
	setIf(set, "address", patch.Address)
	setIf(set, "housing", patch.Housing)
	setIf(set, "job_assistance", patch.JobAssistance)
	setIf(set, "job_guarantee", patch.JobGuarantee)
	setIf(set, "accept_gi", patch.AcceptGI)
	if patch.Careers != nil {
		set["careers"] = patch.Careers
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bootcampDoc
	if len(set) == 0 {
		err = r.col.FindOne(ctx, filter).Decode(&doc)
	} else {
		err = r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&doc)
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrBootcampNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, fmt.Errorf("%w: bootcamp name already taken", domain.ErrConflict)
	case err != nil:
		return nil, fmt.Errorf("update bootcamp: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := scopedFilter(id, ownerID, domain.ErrBootcampNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete bootcamp: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBootcampNotFound
	}
	return nil
}

func (r *BootcampRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete bootcamps: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id string, cost float64) error {
	return r.setField(ctx, id, "average_cost", cost)
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, rating float64) error {
	return r.setField(ctx, id, "average_rating", rating)
}

func (r *BootcampRepository) setField(ctx context.Context, id, field string, v any) error {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{field: v}})
	return err
}

// EnsureIndexes creates the indexes on the bootcamps collection.
func (r *BootcampRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	onePerPublisher := options.Index().
		SetName(publisherIndex).
		SetUnique(true).
		SetPartialFilterExpression(bson.D{{Key: "publisher", Value: bson.D{{Key: "$exists", Value: true}}}})

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "publisher", Value: 1}}, Options: onePerPublisher},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
