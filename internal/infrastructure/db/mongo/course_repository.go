package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swa1245/course-market/internal/core/domain"
)

const coursesCollection = "courses"

type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(coursesCollection)}
}

type courseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image"`
	CreatorID   primitive.ObjectID `bson:"creator_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d courseDoc) toDomain() *domain.Course {
	return &domain.Course{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Image:       d.Image,
		CreatorID:   d.CreatorID.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	creatorID, err := primitive.ObjectIDFromHex(c.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("insert course: bad creator id: %w", err)
	}

	doc := courseDoc{
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		Image:       c.Image,
		CreatorID:   creatorID,
		CreatedAt:   c.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	var doc courseDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Course, error) {
	out := make(map[string]*domain.Course, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc courseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		c := doc.toDomain()
		out[c.ID] = c
	}
	return out, cur.Err()
}

func (r *CourseRepository) FindByCreator(ctx context.Context, creatorID string) ([]*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, fmt.Errorf("find courses: bad creator id: %w", err)
	}
	return r.findAll(ctx, bson.M{"creator_id": oid})
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]*domain.Course, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *CourseRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	defer cur.Close(ctx)

	var courses []*domain.Course
	for cur.Next(ctx) {
		var doc courseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode course: %w", err)
		}
		courses = append(courses, doc.toDomain())
	}
	return courses, cur.Err()
}

// UpdateOwned applies the patch to the course matching both id and creator.
// A single filter covers existence and ownership, so callers cannot tell a
// missing course from someone else's.
func (r *CourseRepository) UpdateOwned(ctx context.Context, id, creatorID string, patch domain.CoursePatch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}
	creatorOID, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	filter := bson.M{"_id": oid, "creator_id": creatorOID}

	// Nothing to set: run the same filter as a lookup so a missing or
	// foreign course still reports not found.
	if len(set) == 0 {
		if err := r.coll.FindOne(ctx, filter).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrCourseNotFound
			}
			return fmt.Errorf("update course: %w", err)
		}
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// EnsureIndexes creates the catalog indexes.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
