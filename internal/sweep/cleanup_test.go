package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"huddle/internal/booking/repository"
)

type mockReservationRepo struct {
	repository.ReservationRepository
	deleteBeforeFn func(ctx context.Context, day string) (int64, error)
}

func (m *mockReservationRepo) DeleteBefore(ctx context.Context, day string) (int64, error) {
	return m.deleteBeforeFn(ctx, day)
}

type mockProposalRepo struct {
	repository.ProposalRepository
	deleteBeforeFn func(ctx context.Context, day string) (int64, error)
}

func (m *mockProposalRepo) DeleteBefore(ctx context.Context, day string) (int64, error) {
	return m.deleteBeforeFn(ctx, day)
}

func TestCleanupSweepPurgesPastRows(t *testing.T) {
	now := time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)
	clock := &stepClock{now: now}

	var reservationDay, proposalDay string
	var reminderBefore int64

	reservations := &mockReservationRepo{
		deleteBeforeFn: func(ctx context.Context, day string) (int64, error) {
			reservationDay = day
			return 3, nil
		},
	}
	proposals := &mockProposalRepo{
		deleteBeforeFn: func(ctx context.Context, day string) (int64, error) {
			proposalDay = day
			return 2, nil
		},
	}
	reminders := &mockReminderRepo{
		deleteExpiredFn: func(ctx context.Context, before int64) (int64, error) {
			reminderBefore = before
			return 1, nil
		},
	}

	s := NewCleanupSweep(reservations, proposals, reminders, clock, sweepConfig())
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if reservationDay != "2026-09-01" || proposalDay != "2026-09-01" {
		t.Errorf("delete days = %q / %q, want today", reservationDay, proposalDay)
	}
	if reminderBefore != now.Unix() {
		t.Errorf("reminder cutoff = %d, want %d", reminderBefore, now.Unix())
	}
}

func TestCleanupSweepStopsOnFirstFailure(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)}

	reservations := &mockReservationRepo{
		deleteBeforeFn: func(ctx context.Context, day string) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}
	proposals := &mockProposalRepo{
		deleteBeforeFn: func(ctx context.Context, day string) (int64, error) {
			t.Fatal("proposal delete ran after reservation delete failed")
			return 0, nil
		},
	}
	reminders := &mockReminderRepo{}

	s := NewCleanupSweep(reservations, proposals, reminders, clock, sweepConfig())
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil, want failure")
	}
}
