package sweep

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"huddle/internal/booking/repository"
	"huddle/internal/chat"
	"huddle/internal/sensor"
	"huddle/pkg/config"
	"huddle/pkg/kafka"
	"huddle/pkg/logger"
	"huddle/pkg/model"
)

type mockReminderRepo struct {
	repository.ReminderRepository
	findDueBetweenFn func(ctx context.Context, from, to int64) ([]*model.Reminder, error)
	deleteExpiredFn  func(ctx context.Context, before int64) (int64, error)
}

func (m *mockReminderRepo) FindDueBetween(ctx context.Context, from, to int64) ([]*model.Reminder, error) {
	return m.findDueBetweenFn(ctx, from, to)
}

func (m *mockReminderRepo) DeleteExpired(ctx context.Context, before int64) (int64, error) {
	return m.deleteExpiredFn(ctx, before)
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func sweepConfig() *config.Config {
	return &config.Config{
		Location: time.UTC,
		TempLow:  config.DefaultTempLow,
		TempHigh: config.DefaultTempHigh,
		Log:      logger.New(logger.Config{Level: "error", Format: logger.TEXT, Output: io.Discard}),
	}
}

func outboundText(t *testing.T, msg kafka.Message) string {
	t.Helper()
	var out chat.Outbound
	if err := json.Unmarshal(msg.Value, &out); err != nil {
		t.Fatalf("unmarshal outbound: %v", err)
	}
	return out.Text
}

func TestReminderSweepWindowAdvances(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	clock := &stepClock{now: start}

	var windows [][2]int64
	repo := &mockReminderRepo{
		findDueBetweenFn: func(ctx context.Context, from, to int64) ([]*model.Reminder, error) {
			windows = append(windows, [2]int64{from, to})
			return nil, nil
		},
	}
	pub := &mockPublisher{}
	s := NewReminderSweep(repo, sensor.NewState(10, 490, 650), pub, clock, sweepConfig())

	clock.now = start.Add(15 * time.Minute)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	clock.now = start.Add(30 * time.Minute)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := [][2]int64{
		{start.Unix(), start.Add(15 * time.Minute).Unix()},
		{start.Add(15 * time.Minute).Unix(), start.Add(30 * time.Minute).Unix()},
	}
	if len(windows) != 2 || windows[0] != want[0] || windows[1] != want[1] {
		t.Errorf("windows = %v, want %v", windows, want)
	}
}

func TestReminderSweepPublishesDueReminders(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	clock := &stepClock{now: start}

	repo := &mockReminderRepo{
		findDueBetweenFn: func(ctx context.Context, from, to int64) ([]*model.Reminder, error) {
			return []*model.Reminder{
				{ID: "r1", ChannelID: "C1", Text: "<@U1> 'Standup' is starting in 15 minutes. See you there!"},
				{ID: "r2", ChannelID: "C2", Text: "<@U2> You have a meeting starting in 15 minutes. See you there!"},
			}, nil
		},
	}
	pub := &mockPublisher{}
	s := NewReminderSweep(repo, sensor.NewState(10, 490, 650), pub, clock, sweepConfig())

	clock.now = start.Add(15 * time.Minute)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(pub.published) != 2 {
		t.Fatalf("published %d messages, want 2", len(pub.published))
	}
	if pub.published[0].Key != "C1" || pub.published[1].Key != "C2" {
		t.Errorf("keys = %q, %q", pub.published[0].Key, pub.published[1].Key)
	}
	if got := outboundText(t, pub.published[0]); got != "<@U1> 'Standup' is starting in 15 minutes. See you there!" {
		t.Errorf("text = %q", got)
	}
}

func TestReminderSweepAppendsComfortNote(t *testing.T) {
	tests := []struct {
		name   string
		temp   float64
		suffix string
	}{
		{"cold room", 15, "\n" + config.LowTempMessage},
		{"hot room", 30, "\n" + config.HighTempMessage},
		{"comfortable room", 21, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
			clock := &stepClock{now: start}
			repo := &mockReminderRepo{
				findDueBetweenFn: func(ctx context.Context, from, to int64) ([]*model.Reminder, error) {
					return []*model.Reminder{{ID: "r1", ChannelID: "C1", Text: "reminder"}}, nil
				},
			}
			pub := &mockPublisher{}
			state := sensor.NewState(10, 490, 650)
			state.Apply(sensor.Reading{Temperature: tc.temp})
			s := NewReminderSweep(repo, state, pub, clock, sweepConfig())

			clock.now = start.Add(15 * time.Minute)
			if err := s.Run(context.Background()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := outboundText(t, pub.published[0]); got != "reminder"+tc.suffix {
				t.Errorf("text = %q, want %q", got, "reminder"+tc.suffix)
			}
		})
	}
}

func TestReminderSweepNoComfortNoteWithoutReading(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	clock := &stepClock{now: start}
	repo := &mockReminderRepo{
		findDueBetweenFn: func(ctx context.Context, from, to int64) ([]*model.Reminder, error) {
			return []*model.Reminder{{ID: "r1", ChannelID: "C1", Text: "reminder"}}, nil
		},
	}
	pub := &mockPublisher{}
	s := NewReminderSweep(repo, sensor.NewState(10, 490, 650), pub, clock, sweepConfig())

	clock.now = start.Add(15 * time.Minute)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := outboundText(t, pub.published[0]); got != "reminder" {
		t.Errorf("text = %q, want bare reminder text", got)
	}
}

func TestReminderSweepKeepsWindowOnQueryFailure(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	clock := &stepClock{now: start}

	fail := true
	var fromSeen []int64
	repo := &mockReminderRepo{
		findDueBetweenFn: func(ctx context.Context, from, to int64) ([]*model.Reminder, error) {
			fromSeen = append(fromSeen, from)
			if fail {
				return nil, errors.New("primary stepped down")
			}
			return nil, nil
		},
	}
	pub := &mockPublisher{}
	s := NewReminderSweep(repo, sensor.NewState(10, 490, 650), pub, clock, sweepConfig())

	clock.now = start.Add(15 * time.Minute)
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil, want query failure")
	}

	// next run retries the same window start
	fail = false
	clock.now = start.Add(30 * time.Minute)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(fromSeen) != 2 || fromSeen[0] != fromSeen[1] {
		t.Errorf("window starts = %v, want the failed window retried", fromSeen)
	}
}

func TestReminderSweepSkipsUnelapsedWindow(t *testing.T) {
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	clock := &stepClock{now: start}
	repo := &mockReminderRepo{
		findDueBetweenFn: func(ctx context.Context, from, to int64) ([]*model.Reminder, error) {
			t.Fatal("FindDueBetween called before any time passed")
			return nil, nil
		},
	}
	s := NewReminderSweep(repo, sensor.NewState(10, 490, 650), &mockPublisher{}, clock, sweepConfig())

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
