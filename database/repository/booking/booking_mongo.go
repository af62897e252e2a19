package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}

// concurrentChange aborts a cascade whose snapshot no longer matches storage. The caller
// may retry, so it surfaces as a conflict rather than a storage failure.
func concurrentChange(bookingID string) error {
	return models.ErrBookingChanged.With("booking changed while the extension was being applied, retry",
		map[string]string{"bookingId": bookingID})
}

func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "providerId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "scheduledAt", Value: 1},
		}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "scheduledAt", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking %s: %w", booking.ID, err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("booking", id)
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListActiveByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	return r.list(ctx, bson.M{
		"providerId":  providerID,
		"status":      bson.M{"$in": models.ActiveStatuses},
		"scheduledAt": bson.M{"$gte": from, "$lt": to},
	})
}

func (r *MongoBookingRepo) ListByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	return r.list(ctx, bson.M{
		"providerId":  providerID,
		"scheduledAt": bson.M{"$gte": from, "$lt": to},
	})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrInvalidTransition.With(
				fmt.Sprintf("booking %s is no longer %s", id, from), nil)
		}
		return nil, fmt.Errorf("failed to update status of booking %s: %w", id, err)
	}
	return &updated, nil
}

// ApplyCascade commits the target extension and every shift, or nothing. Each write is
// guarded by the value the plan was computed from, so a concurrent edit aborts the transaction.
func (r *MongoBookingRepo) ApplyCascade(ctx context.Context, w CascadeWrite) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	active := bson.M{"$in": models.ActiveStatuses}

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": w.TargetID, "status": active, "durationMinutes": w.OldDurationMinutes},
			bson.M{"$set": bson.M{"durationMinutes": w.NewDurationMinutes, "updatedAt": w.At}},
		)
		if err != nil {
			return fmt.Errorf("extend booking %s failed: %w", w.TargetID, err)
		}
		if res.MatchedCount == 0 {
			return concurrentChange(w.TargetID)
		}

		for _, s := range w.Reschedules {
			res, err := r.coll.UpdateOne(sc,
				bson.M{"id": s.BookingID, "status": active, "scheduledAt": s.From},
				bson.M{
					"$set": bson.M{
						"scheduledAt":         s.To,
						"previousScheduledAt": s.From,
						"updatedAt":           w.At,
					},
					"$inc": bson.M{"rescheduleCount": 1},
				},
			)
			if err != nil {
				return fmt.Errorf("shift booking %s failed: %w", s.BookingID, err)
			}
			if res.MatchedCount == 0 {
				return concurrentChange(s.BookingID)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("cascade transaction failed: %w", err)
	}
	return nil
}
