// Package sweep holds the periodic jobs: dispatching due reminders to chat
// and purging rows whose day has passed.
package sweep

import (
	"context"

	"huddle/internal/booking/repository"
	"huddle/internal/chat"
	"huddle/internal/sensor"
	"huddle/pkg/config"
	"huddle/pkg/kafka"
	"huddle/pkg/timegrid"
)

// Publisher is the outbound chat transport the sweeps publish through.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// ReminderSweep delivers reminders that came due since the previous run.
// The window is half-open [lastSweep, now), so consecutive runs never
// deliver a reminder twice and never leave a gap between them.
type ReminderSweep struct {
	reminders repository.ReminderRepository
	state     *sensor.State
	producer  Publisher
	clock     timegrid.Clock
	cfg       *config.Config

	lastSweep int64
}

func NewReminderSweep(reminders repository.ReminderRepository, state *sensor.State, producer Publisher, clock timegrid.Clock, cfg *config.Config) *ReminderSweep {
	return &ReminderSweep{
		reminders: reminders,
		state:     state,
		producer:  producer,
		clock:     clock,
		cfg:       cfg,
		// reminders already due at startup are stale, the cleanup sweep
		// removes them
		lastSweep: clock.Now().Unix(),
	}
}

func (s *ReminderSweep) Name() string {
	return "reminder-dispatch"
}

func (s *ReminderSweep) Run(ctx context.Context) error {
	now := s.clock.Now().Unix()
	if now <= s.lastSweep {
		return nil
	}

	due, err := s.reminders.FindDueBetween(ctx, s.lastSweep, now)
	if err != nil {
		s.cfg.Log.Error("Failed to load due reminders", "error", err)
		return err
	}
	s.lastSweep = now

	suffix := comfortSuffix(s.state.Snapshot(), s.cfg)
	sent := 0
	for _, reminder := range due {
		text := reminder.Text
		if suffix != "" {
			text += "\n" + suffix
		}

		msg := kafka.NewMessage().
			WithKey(reminder.ChannelID).
			WithValue(chat.Outbound{ChannelID: reminder.ChannelID, Text: text}).
			WithEventType("chat.reminder").
			WithSource("huddle").
			Build()
		if err := s.producer.Publish(ctx, msg); err != nil {
			s.cfg.Log.Error("Failed to publish reminder", "reminder_id", reminder.ID, "error", err)
			continue
		}
		sent++
	}

	s.cfg.Log.Info("Reminders sent", "count", sent)
	return nil
}

// comfortSuffix picks the climate note appended to reminders when the room
// is uncomfortably cold or hot.
func comfortSuffix(snap sensor.Snapshot, cfg *config.Config) string {
	if !snap.TemperatureValid {
		return ""
	}
	if snap.Temperature <= cfg.TempLow {
		return config.LowTempMessage
	}
	if snap.Temperature >= cfg.TempHigh {
		return config.HighTempMessage
	}
	return ""
}
