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

	"github.com/swa1245/course-market/internal/core/domain"
)

const (
	purchasesCollection      = "purchases"
	purchaseEventsCollection = "purchase_events"
)

type PurchaseRepository struct {
	coll *mongo.Collection
}

func NewPurchaseRepository(db *mongo.Database) *PurchaseRepository {
	return &PurchaseRepository{coll: db.Collection(purchasesCollection)}
}

type purchaseDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"user_id"`
	CourseID     primitive.ObjectID `bson:"course_id"`
	PurchaseDate time.Time          `bson:"purchase_date"`
}

func (d purchaseDoc) toDomain() *domain.Purchase {
	return &domain.Purchase{
		ID:           d.ID.Hex(),
		UserID:       d.UserID.Hex(),
		CourseID:     d.CourseID.Hex(),
		PurchaseDate: d.PurchaseDate.UTC(),
	}
}

// Create inserts a ledger entry. A duplicate (user_id, course_id) pair trips
// the unique index and surfaces as domain.ErrAlreadyPurchased, so the
// invariant holds even when two requests race past the pre-check.
func (r *PurchaseRepository) Create(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return nil, fmt.Errorf("insert purchase: bad user id: %w", err)
	}
	courseID, err := primitive.ObjectIDFromHex(p.CourseID)
	if err != nil {
		return nil, fmt.Errorf("insert purchase: bad course id: %w", err)
	}

	doc := purchaseDoc{
		UserID:       userID,
		CourseID:     courseID,
		PurchaseDate: p.PurchaseDate,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyPurchased
		}
		return nil, fmt.Errorf("insert purchase: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PurchaseRepository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrPurchaseNotFound
	}
	courseOID, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, domain.ErrPurchaseNotFound
	}

	var doc purchaseDoc
	err = r.coll.FindOne(ctx, bson.M{"user_id": userOID, "course_id": courseOID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PurchaseRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("find purchases: bad user id: %w", err)
	}

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userOID})
	if err != nil {
		return nil, fmt.Errorf("find purchases: %w", err)
	}
	defer cur.Close(ctx)

	var purchases []*domain.Purchase
	for cur.Next(ctx) {
		var doc purchaseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode purchase: %w", err)
		}
		purchases = append(purchases, doc.toDomain())
	}
	return purchases, cur.Err()
}

// EnsureIndexes creates the unique compound index that enforces the
// at-most-one-purchase-per-(user, course) invariant.
func (r *PurchaseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "course_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// PurchaseEventRepository appends to the purchase audit trail written by the
// dispatcher workers.
type PurchaseEventRepository struct {
	coll *mongo.Collection
}

func NewPurchaseEventRepository(db *mongo.Database) *PurchaseEventRepository {
	return &PurchaseEventRepository{coll: db.Collection(purchaseEventsCollection)}
}

type purchaseEventDoc struct {
	PurchaseID string    `bson:"purchase_id"`
	UserID     string    `bson:"user_id"`
	CourseID   string    `bson:"course_id"`
	Price      float64   `bson:"price"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func (r *PurchaseEventRepository) InsertEvent(ctx context.Context, e *domain.PurchaseEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, purchaseEventDoc{
		PurchaseID: e.PurchaseID,
		UserID:     e.UserID,
		CourseID:   e.CourseID,
		Price:      e.Price,
		OccurredAt: e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("insert purchase event: %w", err)
	}
	return nil
}
