package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingerrors "huddle/internal/booking/errors"
	"huddle/pkg/config"
	"huddle/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	ProposalCollection = "Proposals"
)

type mongoProposalRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ProposalRepository interface {
	CreateBatch(ctx context.Context, proposals []*model.Proposal) error
	FindByRef(ctx context.Context, bookerID string, ref int) (*model.Proposal, error)
	DeleteByBooker(ctx context.Context, bookerID string) (int64, error)
	DeleteBefore(ctx context.Context, day string) (int64, error)
}

func NewMongoProposalRepository(cfg *config.Config) ProposalRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoProposalRepository{
		cfg:        cfg,
		collection: db.Collection(ProposalCollection),
	}
}

func (r *mongoProposalRepository) CreateBatch(ctx context.Context, proposals []*model.Proposal) error {
	if len(proposals) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]any, 0, len(proposals))
	for _, p := range proposals {
		p.CreatedAt = now
		docs = append(docs, p)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to store proposal batch: %w", err)
	}
	return nil
}

func (r *mongoProposalRepository) FindByRef(ctx context.Context, bookerID string, ref int) (*model.Proposal, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var proposal model.Proposal
	err := r.collection.FindOne(ctx, bson.M{"booker_id": bookerID, "ref": ref}).Decode(&proposal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to find proposal: %w", err)
	}
	return &proposal, nil
}

func (r *mongoProposalRepository) DeleteByBooker(ctx context.Context, bookerID string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"booker_id": bookerID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete proposals: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoProposalRepository) DeleteBefore(ctx context.Context, day string) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"day": bson.M{"$lt": day}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale proposals: %w", err)
	}
	return result.DeletedCount, nil
}
