package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingerrors "huddle/internal/booking/errors"
	"huddle/pkg/config"
	mongotx "huddle/pkg/db/mongo"
	"huddle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ReservationCollection = "Reservations"
)

type mongoReservationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ReservationRepository interface {
	Create(ctx context.Context, res *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	// FindOnDayEndingAfter returns reservations on day whose end is at or
	// after fromMinute, ordered by start. Feeds the free-slot computation.
	FindOnDayEndingAfter(ctx context.Context, day string, fromMinute int) ([]*model.Reservation, error)
	// FindUnfinishedOnDay is the display view: like FindOnDayEndingAfter but
	// skipping finished reservations, capped at limit.
	FindUnfinishedOnDay(ctx context.Context, day string, fromMinute int, limit int) ([]*model.Reservation, error)
	// FindFromDay returns reservations dated on or after day, ordered by
	// (day, start). An empty bookerID means all bookers.
	FindFromDay(ctx context.Context, day string, bookerID string) ([]*model.Reservation, error)
	UpdateName(ctx context.Context, id string, name string) error
	SetInProgress(ctx context.Context, id string) error
	SetFinished(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteBefore(ctx context.Context, day string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(ReservationCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	res.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, res)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		res.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	var res model.Reservation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &res, nil
}

func (r *mongoReservationRepository) FindOnDayEndingAfter(ctx context.Context, day string, fromMinute int) ([]*model.Reservation, error) {
	filter := bson.M{
		"day": day,
		"$expr": bson.M{
			"$gte": bson.A{
				bson.M{"$add": bson.A{"$start_minute", "$duration_min"}},
				fromMinute,
			},
		},
	}
	return r.find(ctx, filter, bson.D{{Key: "start_minute", Value: 1}}, 0)
}

func (r *mongoReservationRepository) FindUnfinishedOnDay(ctx context.Context, day string, fromMinute int, limit int) ([]*model.Reservation, error) {
	filter := bson.M{
		"day":      day,
		"finished": false,
		"$expr": bson.M{
			"$gte": bson.A{
				bson.M{"$add": bson.A{"$start_minute", "$duration_min"}},
				fromMinute,
			},
		},
	}
	return r.find(ctx, filter, bson.D{{Key: "start_minute", Value: 1}}, int64(limit))
}

func (r *mongoReservationRepository) FindFromDay(ctx context.Context, day string, bookerID string) ([]*model.Reservation, error) {
	filter := bson.M{"day": bson.M{"$gte": day}}
	if bookerID != "" {
		filter["booker_id"] = bookerID
	}
	sort := bson.D{{Key: "day", Value: 1}, {Key: "start_minute", Value: 1}}
	return r.find(ctx, filter, sort, 0)
}

func (r *mongoReservationRepository) find(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]*model.Reservation, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (r *mongoReservationRepository) UpdateName(ctx context.Context, id string, name string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"name": name}})
}

func (r *mongoReservationRepository) SetInProgress(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"in_progress": true}})
}

func (r *mongoReservationRepository) SetFinished(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"in_progress": false, "finished": true}})
}

func (r *mongoReservationRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingerrors.ErrReservationNotFound
	}
	return nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingerrors.ErrReservationNotFound
	}
	return nil
}

func (r *mongoReservationRepository) DeleteBefore(ctx context.Context, day string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"day": bson.M{"$lt": day}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old reservations: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
