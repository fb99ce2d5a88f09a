package repository

import (
	"context"
	"fmt"

	"huddle/pkg/config"
	"huddle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ReminderCollection = "Reminders"
)

type mongoReminderRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ReminderRepository interface {
	Create(ctx context.Context, reminder *model.Reminder) error
	// FindDueBetween returns reminders with from <= send_at < to, ordered by
	// send_at. The dispatch sweep passes [lastSweep, now).
	FindDueBetween(ctx context.Context, from, to int64) ([]*model.Reminder, error)
	DeleteExpired(ctx context.Context, before int64) (int64, error)
	DeleteByReservation(ctx context.Context, reservationID string) error
}

func NewMongoReminderRepository(cfg *config.Config) ReminderRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReminderRepository{
		cfg:        cfg,
		collection: db.Collection(ReminderCollection),
	}
}

func (r *mongoReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reminder.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReminderRepository) FindDueBetween(ctx context.Context, from, to int64) ([]*model.Reminder, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"send_at": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "send_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []*model.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return reminders, nil
}

func (r *mongoReminderRepository) DeleteExpired(ctx context.Context, before int64) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"send_at": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reminders: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoReminderRepository) DeleteByReservation(ctx context.Context, reservationID string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"reservation_id": reservationID}); err != nil {
		return fmt.Errorf("failed to delete reminders for reservation: %w", err)
	}
	return nil
}
