package sensor

import (
	"context"

	"huddle/pkg/kafka"
	"huddle/pkg/logger"
)

// reading is the wire form of one polling cycle published by the hardware
// bridge.
type reading struct {
	Motion      bool    `json:"motion"`
	Temperature float64 `json:"temperature_c"`
	Light       float64 `json:"light"`
	Current     float64 `json:"current_ma"`
}

// Handler folds readings from the sensor topic into a State.
type Handler struct {
	state *State
	log   *logger.Logger
}

func NewHandler(state *State, log *logger.Logger) *Handler {
	return &Handler{state: state, log: log}
}

// Handle implements kafka.MessageHandler. Malformed readings are dropped;
// retrying stale sensor data has no value.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	var r reading
	if err := msg.DecodeValue(&r); err != nil {
		h.log.Warn("Dropping malformed sensor reading", "error", err)
		return nil
	}

	h.state.Apply(Reading{
		Motion:      r.Motion,
		Temperature: r.Temperature,
		Light:       r.Light,
		Current:     r.Current,
	})
	return nil
}
