package repository

import (
	"context"
	"time"

	"huddle/pkg/config"
	"huddle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	BookerLockCollection = "BookerLocks"
)

// BookerLockRepository provides operations for advisory locks
type BookerLockRepository interface {
	Create(ctx context.Context, lock *model.BookerLock) (*model.BookerLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoBookerLockRepository struct {
	collection *mongo.Collection
}

func NewMongoBookerLockRepository(cfg *config.Config) BookerLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookerLockRepository{
		collection: db.Collection(BookerLockCollection),
	}
}

// Returns duplicate key error if lock already exists
func (r *mongoBookerLockRepository) Create(ctx context.Context, lock *model.BookerLock) (*model.BookerLock, error) {
	lock.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return nil, err
	}
	return lock, nil
}

func (r *mongoBookerLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
