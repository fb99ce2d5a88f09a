package sweep

import (
	"context"

	"huddle/internal/booking/repository"
	"huddle/pkg/config"
	"huddle/pkg/timegrid"
)

// CleanupSweep drops rows the system no longer reads: reservations and
// proposals from past days, and reminders whose send instant has passed.
type CleanupSweep struct {
	reservations repository.ReservationRepository
	proposals    repository.ProposalRepository
	reminders    repository.ReminderRepository
	clock        timegrid.Clock
	cfg          *config.Config
}

func NewCleanupSweep(reservations repository.ReservationRepository, proposals repository.ProposalRepository, reminders repository.ReminderRepository, clock timegrid.Clock, cfg *config.Config) *CleanupSweep {
	return &CleanupSweep{
		reservations: reservations,
		proposals:    proposals,
		reminders:    reminders,
		clock:        clock,
		cfg:          cfg,
	}
}

func (s *CleanupSweep) Name() string {
	return "cleanup"
}

func (s *CleanupSweep) Run(ctx context.Context) error {
	now := s.clock.Now()
	today := timegrid.DayKey(now, s.cfg.Location)

	reservations, err := s.reservations.DeleteBefore(ctx, today)
	if err != nil {
		s.cfg.Log.Error("Failed to delete old reservations", "error", err)
		return err
	}

	proposals, err := s.proposals.DeleteBefore(ctx, today)
	if err != nil {
		s.cfg.Log.Error("Failed to delete old proposals", "error", err)
		return err
	}

	reminders, err := s.reminders.DeleteExpired(ctx, now.Unix())
	if err != nil {
		s.cfg.Log.Error("Failed to delete expired reminders", "error", err)
		return err
	}

	s.cfg.Log.Info("Cleanup finished",
		"reservations", reservations,
		"proposals", proposals,
		"reminders", reminders,
	)
	return nil
}
