package repository

import (
	"context"
	"errors"
	"fmt"

	bookingerrors "huddle/internal/booking/errors"
	"huddle/pkg/config"
	"huddle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	BookingRefCollection = "BookingRefs"
)

type mongoBookingRefRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type BookingRefRepository interface {
	// ReplaceSet discards the booker's current reference set and installs
	// refs in its place. Callers run this inside a transaction so the
	// replacement is atomic; an empty refs still discards the old set.
	ReplaceSet(ctx context.Context, bookerID string, refs []*model.BookingRef) error
	Resolve(ctx context.Context, bookerID string, ref int) (*model.BookingRef, error)
	DeleteByBooker(ctx context.Context, bookerID string) (int64, error)
}

func NewMongoBookingRefRepository(cfg *config.Config) BookingRefRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRefRepository{
		cfg:        cfg,
		collection: db.Collection(BookingRefCollection),
	}
}

func (r *mongoBookingRefRepository) ReplaceSet(ctx context.Context, bookerID string, refs []*model.BookingRef) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"booker_id": bookerID}); err != nil {
		return fmt.Errorf("failed to discard booking references: %w", err)
	}

	if len(refs) == 0 {
		return nil
	}

	docs := make([]any, 0, len(refs))
	for _, ref := range refs {
		docs = append(docs, ref)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to store booking references: %w", err)
	}
	return nil
}

func (r *mongoBookingRefRepository) Resolve(ctx context.Context, bookerID string, ref int) (*model.BookingRef, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var bookingRef model.BookingRef
	err := r.collection.FindOne(ctx, bson.M{"booker_id": bookerID, "ref": ref}).Decode(&bookingRef)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrRefNotFound
		}
		return nil, fmt.Errorf("failed to resolve booking reference: %w", err)
	}
	return &bookingRef, nil
}

func (r *mongoBookingRefRepository) DeleteByBooker(ctx context.Context, bookerID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"booker_id": bookerID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking references: %w", err)
	}
	return result.DeletedCount, nil
}
