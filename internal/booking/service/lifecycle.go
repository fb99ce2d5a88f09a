package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingerrors "huddle/internal/booking/errors"
	"huddle/internal/booking/repository"
	"huddle/internal/booking/validator"
	"huddle/internal/schedule"
	"huddle/pkg/config"
	apperrors "huddle/pkg/errors"
	"huddle/pkg/model"
	"huddle/pkg/sanitizer"
	"huddle/pkg/timegrid"

	"go.mongodb.org/mongo-driver/mongo"
)

const lockTTL = 10 * time.Second

// AvailabilityResult carries the free-interval view of a day together with
// the candidate proposals stored for the booker. Proposal refs are 1-based
// in ranking order.
type AvailabilityResult struct {
	Day       string
	AllFree   bool
	FreeSlots []*schedule.FreeSlot
	Proposals []*schedule.FreeSlot
}

type LifecycleService interface {
	// Availability partitions the day into free slots from startMinute on,
	// ranks up to four candidates for requestedDuration, and replaces the
	// booker's proposal batch with them.
	Availability(ctx context.Context, bookerID, day string, startMinute, requestedDuration int) (*AvailabilityResult, error)
	// CreateProposalBatch discards the booker's current batch and stores
	// candidates tagged with 1-based refs in order. Called by Availability;
	// exported for callers that rank candidates themselves.
	CreateProposalBatch(ctx context.Context, bookerID, day string, candidates []*schedule.FreeSlot) error
	// Confirm materializes the proposal at (booker, ref) into a durable
	// reservation, consuming the booker's whole batch. A non-empty channelID
	// schedules an advance reminder unless its fire instant is already past.
	Confirm(ctx context.Context, bookerID string, ref int, attendees int, name string, channelID string) (*model.Reservation, error)
	// ListBookings returns reservations on or after fromDay as slot views,
	// ordered by (day, start). With allBookers true the listing covers every
	// booker; either way the requester's own rows are tagged with fresh
	// 1-based refs and their reference set is replaced in full.
	ListBookings(ctx context.Context, bookerID string, allBookers bool, fromDay string) ([]*schedule.FreeSlot, error)
	// Rename resolves ref through the booker's current reference set and
	// updates the reservation's display name.
	Rename(ctx context.Context, bookerID string, ref int, newName string) error
	MarkStarted(ctx context.Context, reservationID string) error
	MarkEnded(ctx context.Context, reservationID string) error
	// InstantBook creates a reservation starting now, aligned down to the
	// grid, for the configured instant duration.
	InstantBook(ctx context.Context, bookerID, name string) (*model.Reservation, error)
	// Steal deletes an existing reservation together with its reminders and
	// instant-books the room for the taker.
	Steal(ctx context.Context, reservationID, bookerID string) (*model.Reservation, error)
	// UpcomingOnDay is the display view: unfinished reservations on day still
	// ending at or after fromMinute, ordered by start.
	UpcomingOnDay(ctx context.Context, day string, fromMinute, limit int) ([]*model.Reservation, error)
}

type lifecycleService struct {
	reservations repository.ReservationRepository
	proposals    repository.ProposalRepository
	refs         repository.BookingRefRepository
	reminders    repository.ReminderRepository
	locks        repository.BookerLockRepository
	validator    *validator.ReservationValidator
	clock        timegrid.Clock
	cfg          *config.Config
}

func NewLifecycleService(
	reservations repository.ReservationRepository,
	proposals repository.ProposalRepository,
	refs repository.BookingRefRepository,
	reminders repository.ReminderRepository,
	locks repository.BookerLockRepository,
	validator *validator.ReservationValidator,
	clock timegrid.Clock,
	cfg *config.Config,
) LifecycleService {
	return &lifecycleService{
		reservations: reservations,
		proposals:    proposals,
		refs:         refs,
		reminders:    reminders,
		locks:        locks,
		validator:    validator,
		clock:        clock,
		cfg:          cfg,
	}
}

func (s *lifecycleService) Availability(ctx context.Context, bookerID, day string, startMinute, requestedDuration int) (*AvailabilityResult, error) {
	if bookerID == "" {
		return nil, apperrors.InvalidInput("Booker ID cannot be empty")
	}
	if _, err := timegrid.ParseDay(day, s.cfg.Location); err != nil {
		return nil, apperrors.InvalidInput("Invalid day format")
	}
	if requestedDuration < s.cfg.MinSlotDuration {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Requested duration must be at least %d minutes", s.cfg.MinSlotDuration))
	}

	floor := timegrid.AlignUp(startMinute)
	occupied, err := s.reservations.FindOnDayEndingAfter(ctx, day, floor)
	if err != nil {
		s.cfg.Log.Error("Failed to load reservations for availability", "day", day, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	spans := make([]schedule.Span, 0, len(occupied))
	for _, res := range occupied {
		spans = append(spans, schedule.Span{Start: res.StartMinute, Duration: res.DurationMin})
	}

	freeSlots, allFree := schedule.ComputeFreeSlots(day, startMinute, s.cfg.MinSlotDuration, spans)
	candidates := schedule.Suggest(freeSlots, requestedDuration, s.cfg.LastSlotStart)

	if err := s.CreateProposalBatch(ctx, bookerID, day, candidates); err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Day:       day,
		AllFree:   allFree,
		FreeSlots: freeSlots,
		Proposals: candidates,
	}, nil
}

func (s *lifecycleService) CreateProposalBatch(ctx context.Context, bookerID, day string, candidates []*schedule.FreeSlot) error {
	if bookerID == "" {
		return apperrors.InvalidInput("Booker ID cannot be empty")
	}

	batch := make([]*model.Proposal, 0, len(candidates))
	for i, c := range candidates {
		c.Ref = i + 1
		p := &model.Proposal{
			Day:         day,
			StartMinute: c.Start,
			DurationMin: c.Duration,
			BookerID:    bookerID,
			Ref:         c.Ref,
		}
		if err := s.validator.ValidateProposal(p); err != nil {
			s.cfg.Log.Warn("Proposal validation failed", "booker_id", bookerID, "ref", c.Ref, "error", err)
			return apperrors.Validation("Invalid proposal", map[string]any{"error": err.Error()})
		}
		batch = append(batch, p)
	}

	lockID, err := s.acquireBookerLock(ctx, bookerID)
	if err != nil {
		return err
	}
	defer s.releaseBookerLock(ctx, lockID)

	// Purge strictly precedes insert so a failure mid-batch never leaves a
	// mix of old and new proposals.
	err = s.reservations.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.proposals.DeleteByBooker(sessCtx, bookerID); err != nil {
			return apperrors.Internal("Failed to discard proposal batch", err)
		}
		if len(batch) == 0 {
			return nil
		}
		if err := s.proposals.CreateBatch(sessCtx, batch); err != nil {
			return apperrors.Internal("Failed to store proposal batch", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to replace proposal batch", "booker_id", bookerID, "error", err)
		return err
	}

	s.cfg.Log.Info("Proposal batch replaced",
		"booker_id", bookerID,
		"day", day,
		"proposals", len(batch),
	)
	return nil
}

func (s *lifecycleService) Confirm(ctx context.Context, bookerID string, ref int, attendees int, name string, channelID string) (*model.Reservation, error) {
	if bookerID == "" {
		return nil, apperrors.InvalidInput("Booker ID cannot be empty")
	}
	if ref < 1 || ref > schedule.MaxSuggestions {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Reference must be between 1 and %d", schedule.MaxSuggestions))
	}

	lockID, err := s.acquireBookerLock(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	defer s.releaseBookerLock(ctx, lockID)

	proposal, err := s.proposals.FindByRef(ctx, bookerID, ref)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrProposalNotFound) {
			return nil, apperrors.NotFoundWithRef("Proposal", ref)
		}
		return nil, apperrors.Internal("Failed to resolve proposal", err)
	}

	res := &model.Reservation{
		Day:         proposal.Day,
		StartMinute: proposal.StartMinute,
		DurationMin: proposal.DurationMin,
		BookerID:    bookerID,
		Attendees:   s.resolveAttendees(proposal, attendees),
		Name:        s.resolveName(name),
	}
	if err := s.validator.Validate(res); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "booker_id", bookerID, "ref", ref, "error", err)
		return nil, apperrors.Validation("Invalid reservation", map[string]any{"error": err.Error()})
	}

	reminder := s.buildReminder(res, channelID)

	err = s.reservations.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.reservations.Create(sessCtx, res); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		// Confirmation consumes the whole batch, not just the chosen ref.
		if _, err := s.proposals.DeleteByBooker(sessCtx, bookerID); err != nil {
			return apperrors.Internal("Failed to purge proposal batch", err)
		}
		if reminder != nil {
			reminder.ReservationID = res.ID
			if err := s.reminders.Create(sessCtx, reminder); err != nil {
				return apperrors.Internal("Failed to schedule reminder", err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to confirm proposal", "booker_id", bookerID, "ref", ref, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Reservation confirmed",
		"id", res.ID,
		"booker_id", bookerID,
		"day", res.Day,
		"start_minute", res.StartMinute,
		"reminder", reminder != nil,
	)
	return res, nil
}

func (s *lifecycleService) resolveAttendees(proposal *model.Proposal, attendees int) int {
	if proposal.Attendees != nil && *proposal.Attendees > 0 {
		return *proposal.Attendees
	}
	if attendees > 0 {
		return attendees
	}
	return config.DefaultAttendees
}

func (s *lifecycleService) resolveName(name string) string {
	name = sanitizer.NormalizeName(name)
	if name == "" {
		return config.UnnamedMeetingName
	}
	return name
}

// buildReminder returns nil when no channel was given or when the fire
// instant is already past; a reminder in the past is skipped, never delivered
// immediately.
func (s *lifecycleService) buildReminder(res *model.Reservation, channelID string) *model.Reminder {
	if channelID == "" {
		return nil
	}

	start, err := timegrid.At(res.Day, res.StartMinute, s.cfg.Location)
	if err != nil {
		return nil
	}
	fireAt := start.Add(-s.cfg.ReminderLead)
	if !fireAt.After(s.clock.Now()) {
		return nil
	}

	leadMin := int(s.cfg.ReminderLead / time.Minute)
	var text string
	if res.Name == config.UnnamedMeetingName {
		text = fmt.Sprintf("<@%s> You have a meeting starting in %d minutes. See you there!", res.BookerID, leadMin)
	} else {
		text = fmt.Sprintf("<@%s> '%s' is starting in %d minutes. See you there!", res.BookerID, res.Name, leadMin)
	}

	return &model.Reminder{
		SendAt:    fireAt.Unix(),
		ChannelID: channelID,
		Text:      text,
	}
}

func (s *lifecycleService) ListBookings(ctx context.Context, bookerID string, allBookers bool, fromDay string) ([]*schedule.FreeSlot, error) {
	if bookerID == "" {
		return nil, apperrors.InvalidInput("Booker ID cannot be empty")
	}
	if _, err := timegrid.ParseDay(fromDay, s.cfg.Location); err != nil {
		return nil, apperrors.InvalidInput("Invalid day format")
	}

	scope := bookerID
	if allBookers {
		scope = ""
	}

	reservations, err := s.reservations.FindFromDay(ctx, fromDay, scope)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations", "from_day", fromDay, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	now := s.clock.Now()
	nowMinute := timegrid.MinuteOfDay(now, s.cfg.Location)
	today := timegrid.DayKey(now, s.cfg.Location)

	views := make([]*schedule.FreeSlot, 0, len(reservations))
	for _, res := range reservations {
		// A booking on the query day that has already ended is history.
		if res.Day == today && res.EndMinute() < nowMinute {
			continue
		}
		views = append(views, schedule.ReservationView(res))
	}

	// Only the requester's own rows get references; an all-bookers listing
	// still refreshes the requester's set so stale refs from an earlier
	// listing cannot resolve.
	refs := make([]*model.BookingRef, 0, len(views))
	for _, v := range views {
		if v.Reservation.BookerID != bookerID {
			continue
		}
		v.Ref = len(refs) + 1
		refs = append(refs, &model.BookingRef{
			BookerID:      bookerID,
			Ref:           v.Ref,
			ReservationID: v.Reservation.ID,
		})
	}

	err = s.reservations.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.refs.ReplaceSet(sessCtx, bookerID, refs); err != nil {
			return apperrors.Internal("Failed to replace booking references", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to replace booking references", "booker_id", bookerID, "error", err)
		return nil, err
	}

	return views, nil
}

func (s *lifecycleService) Rename(ctx context.Context, bookerID string, ref int, newName string) error {
	if bookerID == "" {
		return apperrors.InvalidInput("Booker ID cannot be empty")
	}
	if ref < 1 {
		return apperrors.InvalidInput("Reference must be a positive number")
	}
	newName = sanitizer.NormalizeName(newName)
	if newName == "" {
		return apperrors.InvalidInput("Name cannot be empty")
	}

	mapping, err := s.refs.Resolve(ctx, bookerID, ref)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrRefNotFound) {
			return apperrors.NotFoundWithRef("Booking", ref)
		}
		return apperrors.Internal("Failed to resolve booking reference", err)
	}

	if err := s.reservations.UpdateName(ctx, mapping.ReservationID, newName); err != nil {
		if errors.Is(err, bookingerrors.ErrReservationNotFound) {
			// The reference outlived its reservation; to the booker it is
			// the same stale-reference condition.
			return apperrors.NotFoundWithRef("Booking", ref)
		}
		s.cfg.Log.Error("Failed to rename reservation", "id", mapping.ReservationID, "error", err)
		return apperrors.Internal("Failed to rename reservation", err)
	}

	s.cfg.Log.Info("Reservation renamed", "id", mapping.ReservationID, "booker_id", bookerID, "ref", ref)
	return nil
}

func (s *lifecycleService) MarkStarted(ctx context.Context, reservationID string) error {
	return s.setFlags(ctx, reservationID, s.reservations.SetInProgress, "mark started")
}

func (s *lifecycleService) MarkEnded(ctx context.Context, reservationID string) error {
	return s.setFlags(ctx, reservationID, s.reservations.SetFinished, "mark ended")
}

func (s *lifecycleService) setFlags(ctx context.Context, id string, update func(context.Context, string) error, action string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	err := update(ctx, id)
	if err != nil {
		// The reservation can legitimately be gone (cleaned up or stolen).
		if errors.Is(err, bookingerrors.ErrReservationNotFound) {
			s.cfg.Log.Warn("Reservation already gone", "id", id, "action", action)
			return nil
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid reservation ID format")
		}
		s.cfg.Log.Error("Failed to update reservation flags", "id", id, "action", action, "error", err)
		return apperrors.Internal("Failed to update reservation", err)
	}
	return nil
}

func (s *lifecycleService) InstantBook(ctx context.Context, bookerID, name string) (*model.Reservation, error) {
	if bookerID == "" {
		return nil, apperrors.InvalidInput("Booker ID cannot be empty")
	}

	now := s.clock.Now()
	minute := timegrid.MinuteOfDay(now, s.cfg.Location)
	start := minute - minute%timegrid.GridStep

	if start+s.cfg.InstantDuration > timegrid.DayInMins {
		return nil, apperrors.Conflict("Too late in the day for an instant booking")
	}

	name = sanitizer.NormalizeName(name)
	if name == "" {
		name = config.InstantMeetingName
	}

	res := &model.Reservation{
		Day:         timegrid.DayKey(now, s.cfg.Location),
		StartMinute: start,
		DurationMin: s.cfg.InstantDuration,
		BookerID:    bookerID,
		Attendees:   config.DefaultAttendees,
		Name:        name,
	}
	if err := s.validator.Validate(res); err != nil {
		return nil, apperrors.Validation("Invalid reservation", map[string]any{"error": err.Error()})
	}

	lockID, err := s.acquireSlotLock(ctx, res.Day, res.StartMinute)
	if err != nil {
		return nil, err
	}
	defer s.releaseBookerLock(ctx, lockID)

	err = s.reservations.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.reservations.Create(sessCtx, res); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create instant booking", "booker_id", bookerID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Instant booking created",
		"id", res.ID,
		"booker_id", bookerID,
		"day", res.Day,
		"start_minute", res.StartMinute,
	)
	return res, nil
}

func (s *lifecycleService) Steal(ctx context.Context, reservationID, bookerID string) (*model.Reservation, error) {
	if reservationID == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	if bookerID == "" {
		return nil, apperrors.InvalidInput("Booker ID cannot be empty")
	}

	err := s.reservations.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.reservations.Delete(sessCtx, reservationID); err != nil {
			if errors.Is(err, bookingerrors.ErrReservationNotFound) {
				return apperrors.NotFound("Reservation")
			}
			if errors.Is(err, bookingerrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid reservation ID format")
			}
			return apperrors.Internal("Failed to delete reservation", err)
		}
		if err := s.reminders.DeleteByReservation(sessCtx, reservationID); err != nil {
			return apperrors.Internal("Failed to delete reminders", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to steal reservation", "id", reservationID, "booker_id", bookerID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Reservation stolen", "id", reservationID, "booker_id", bookerID)
	return s.InstantBook(ctx, bookerID, "")
}

func (s *lifecycleService) UpcomingOnDay(ctx context.Context, day string, fromMinute, limit int) ([]*model.Reservation, error) {
	if _, err := timegrid.ParseDay(day, s.cfg.Location); err != nil {
		return nil, apperrors.InvalidInput("Invalid day format")
	}

	reservations, err := s.reservations.FindUnfinishedOnDay(ctx, day, fromMinute, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to load upcoming reservations", "day", day, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

// acquireBookerLock serializes per-booker batch operations with a short-lived
// advisory lock document. Returns Conflict when another request holds it.
func (s *lifecycleService) acquireBookerLock(ctx context.Context, bookerID string) (string, error) {
	return s.acquireLock(ctx, fmt.Sprintf("booker_lock_%s", bookerID))
}

// acquireSlotLock serializes reservation writes for a (day, start) slot.
func (s *lifecycleService) acquireSlotLock(ctx context.Context, day string, start int) (string, error) {
	return s.acquireLock(ctx, fmt.Sprintf("slot_lock_%s_%d", day, start))
}

func (s *lifecycleService) acquireLock(ctx context.Context, lockID string) (string, error) {
	lock := &model.BookerLock{
		ID:        lockID,
		ExpiresAt: s.clock.Now().Add(lockTTL),
	}

	if _, err := s.locks.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("Another booking operation is in flight. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}
	return lockID, nil
}

func (s *lifecycleService) releaseBookerLock(ctx context.Context, lockID string) {
	if err := s.locks.Delete(ctx, lockID); err != nil {
		s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", err)
	}
}
