package chat

import (
	"context"
	"strconv"
	"time"

	"huddle/internal/booking/service"
	"huddle/internal/sensor"
	"huddle/pkg/config"
	apperrors "huddle/pkg/errors"
	"huddle/pkg/kafka"
	"huddle/pkg/timegrid"
)

// Publisher is the outbound side of the chat transport.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Handler consumes inbound chat messages and replies on the outbound topic.
// User mistakes (bad grammar, stale refs, lock contention) become chat
// replies; only infrastructure failures propagate as handler errors so the
// consumer retries them.
type Handler struct {
	service  service.LifecycleService
	state    *sensor.State
	producer Publisher
	parser   *Parser
	clock    timegrid.Clock
	cfg      *config.Config
}

func NewHandler(svc service.LifecycleService, state *sensor.State, producer Publisher, clock timegrid.Clock, cfg *config.Config) *Handler {
	return &Handler{
		service:  svc,
		state:    state,
		producer: producer,
		parser:   NewParser(cfg.Location),
		clock:    clock,
		cfg:      cfg,
	}
}

// Handle implements kafka.MessageHandler for the chat inbound topic.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	var in Inbound
	if err := msg.DecodeValue(&in); err != nil {
		return kafka.NewPermanentError("failed to decode chat message", err)
	}
	if in.ChannelID == "" || in.BookerID == "" {
		return kafka.NewPermanentError("chat message missing channel or booker", kafka.ErrInvalidMessage)
	}

	reply, err := h.dispatch(ctx, &in)
	if err != nil {
		return err
	}
	return h.respond(ctx, in.ChannelID, reply)
}

func (h *Handler) dispatch(ctx context.Context, in *Inbound) (string, error) {
	now := h.clock.Now()

	req, err := h.parser.Parse(in.Text, now)
	if err != nil {
		if usage, ok := err.(*UsageError); ok {
			return usage.Text, nil
		}
		return "", err
	}

	switch req.Command {
	case CommandFree:
		return h.handleFree(ctx, in, req, now)
	case CommandBook:
		return h.handleBook(ctx, in, req)
	case CommandShow:
		views, err := h.service.ListBookings(ctx, in.BookerID, req.All, timegrid.DayKey(now, h.cfg.Location))
		if err != nil {
			return "", err
		}
		return ShowResponse(views, h.cfg.Location), nil
	case CommandName:
		return h.handleRename(ctx, in, req)
	case CommandStatus:
		return StatusResponse(h.state.Snapshot()), nil
	}
	return UnknownCommandText, nil
}

func (h *Handler) handleFree(ctx context.Context, in *Inbound, req *Request, now time.Time) (string, error) {
	result, err := h.service.Availability(ctx, in.BookerID, req.Day, req.StartMinute, h.cfg.DefaultDuration)
	if err != nil {
		if reply, ok := userFacing(err); ok {
			return reply, nil
		}
		return "", err
	}

	today := timegrid.DayKey(now, h.cfg.Location)
	nowMinute := timegrid.MinuteOfDay(now, h.cfg.Location)
	return FreeResponse(result, today, nowMinute, h.cfg.LastSlotStart, h.cfg.Location), nil
}

func (h *Handler) handleBook(ctx context.Context, in *Inbound, req *Request) (string, error) {
	res, err := h.service.Confirm(ctx, in.BookerID, req.Ref, 0, req.Name, in.ChannelID)
	if err != nil {
		appErr := apperrors.AsAppError(err)
		switch appErr.Code {
		case apperrors.CodeNotFound, apperrors.CodeInvalidInput, apperrors.CodeValidation:
			return OptionNotFoundText(strconv.Itoa(req.Ref), BookUsageText), nil
		case apperrors.CodeConflict:
			return appErr.Message, nil
		}
		return "", err
	}
	return BookedResponse(res, req.Name != "", h.cfg.Location), nil
}

func (h *Handler) handleRename(ctx context.Context, in *Inbound, req *Request) (string, error) {
	if err := h.service.Rename(ctx, in.BookerID, req.Ref, req.Name); err != nil {
		appErr := apperrors.AsAppError(err)
		switch appErr.Code {
		case apperrors.CodeNotFound:
			return OptionNotFoundText(strconv.Itoa(req.Ref), NameUsageText), nil
		case apperrors.CodeInvalidInput, apperrors.CodeValidation:
			return NameUsageText, nil
		case apperrors.CodeConflict:
			return appErr.Message, nil
		}
		return "", err
	}
	return RenamedResponse(req.Name), nil
}

func (h *Handler) respond(ctx context.Context, channelID, text string) error {
	msg := kafka.NewMessage().
		WithKey(channelID).
		WithValue(Outbound{ChannelID: channelID, Text: text}).
		WithEventType("chat.reply").
		WithSource("huddle").
		Build()
	return h.producer.Publish(ctx, msg)
}

// userFacing maps a booking error to chat wording, when it has one.
func userFacing(err error) (string, bool) {
	appErr := apperrors.AsAppError(err)
	switch appErr.Code {
	case apperrors.CodeInvalidInput, apperrors.CodeValidation:
		return FreeUsageText, true
	case apperrors.CodeConflict:
		return appErr.Message, true
	}
	return "", false
}
