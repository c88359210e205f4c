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

const collectionCourses = "courses"

var courseSortFields = map[string]bool{
	"title":      true,
	"tuition":    true,
	"weeks":      true,
	"created_at": true,
}

// CourseRepository implements ports.CourseRepository using MongoDB.
type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

type courseDoc struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Title                string             `bson:"title"`
	Description          string             `bson:"description"`
	Weeks                int                `bson:"weeks"`
	Tuition              float64            `bson:"tuition"`
	MinimumSkill         string             `bson:"minimum_skill"`
	ScholarshipAvailable bool               `bson:"scholarship_available"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp"`
	User                 primitive.ObjectID `bson:"user"`
	CreatedAt            time.Time          `bson:"created_at"`
}

func (d *courseDoc) toDomain() *domain.Course {
	return &domain.Course{
		ID:                   d.ID.Hex(),
		Title:                d.Title,
		Description:          d.Description,
		Weeks:                d.Weeks,
		Tuition:              d.Tuition,
		MinimumSkill:         domain.MinimumSkill(d.MinimumSkill),
		ScholarshipAvailable: d.ScholarshipAvailable,
		Bootcamp:             hexOrEmpty(d.Bootcamp),
		User:                 hexOrEmpty(d.User),
		CreatedAt:            d.CreatedAt.UTC(),
	}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	bootcamp, err := objectID(c.Bootcamp, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}
	owner, err := primitive.ObjectIDFromHex(c.User)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid owner id", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := courseDoc{
		Title:                c.Title,
		Description:          c.Description,
		Weeks:                c.Weeks,
		Tuition:              c.Tuition,
		MinimumSkill:         string(c.MinimumSkill),
		ScholarshipAvailable: c.ScholarshipAvailable,
		Bootcamp:             bootcamp,
		User:                 owner,
		CreatedAt:            c.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := objectID(id, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindInBootcamp returns the course only when it belongs to bootcampID.
func (r *CourseRepository) FindInBootcamp(ctx context.Context, bootcampID, id string) (*domain.Course, error) {
	oid, err := objectID(id, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	bootcamp, err := objectID(bootcampID, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid, "bootcamp": bootcamp})
}

func (r *CourseRepository) findOne(ctx context.Context, filter bson.M) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc courseDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CourseRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Course, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	out, err := r.find(ctx, bson.M{}, pageOptions(q, courseSortFields))
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Course, error) {
	bootcamp, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return []*domain.Course{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"bootcamp": bootcamp}, options.Find().SetSort(defaultSort))
}

func (r *CourseRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Course, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	var docs []courseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	out := make([]*domain.Course, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *CourseRepository) Update(ctx context.Context, id, ownerID string, patch ports.CoursePatch) (*domain.Course, error) {
	filter, err := scopedFilter(id, ownerID, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	setIf(set, "title", patch.Title)
	setIf(set, "description", patch.Description)
	setIf(set, "weeks", patch.Weeks)
	setIf(set, "tuition", patch.Tuition)
	setIf(set, "scholarship_available", patch.ScholarshipAvailable)
	if patch.MinimumSkill != nil {
		set["minimum_skill"] = string(*patch.MinimumSkill)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc courseDoc
	if len(set) == 0 {
		err = r.col.FindOne(ctx, filter).Decode(&doc)
	} else {
		err = r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CourseRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := scopedFilter(id, ownerID, domain.ErrCourseNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error) {
	return deleteByBootcamp(ctx, r.col, bootcampID)
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (float64, error) {
	return averageOf(ctx, r.col, bootcampID, "tuition")
}

// EnsureIndexes creates the indexes on the courses collection.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "bootcamp", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})
	return err
}

func deleteByBootcamp(ctx context.Context, col *mongo.Collection, bootcampID string) (int64, error) {
	bootcamp, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteMany(ctx, bson.M{"bootcamp": bootcamp})
	if err != nil {
		return 0, fmt.Errorf("delete %s by bootcamp: %w", col.Name(), err)
	}
	return res.DeletedCount, nil
}

// averageOf aggregates the mean of field over the documents of one bootcamp.
// It returns 0 when the bootcamp has no documents.
func averageOf(ctx context.Context, col *mongo.Collection, bootcampID, field string) (float64, error) {
	bootcamp, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcamp}}},
		{{Key: "$group", Value: bson.M{"_id": "$bootcamp", "avg": bson.M{"$avg": "$" + field}}}},
	}
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate %s: %w", col.Name(), err)
	}
	var rows []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode %s average: %w", col.Name(), err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Avg, nil
}
