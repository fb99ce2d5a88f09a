package handler

import (
	"encoding/json"
	"net/http"

	bookingservice "huddle/internal/booking/service"
	"huddle/internal/display/service"
	"huddle/pkg/config"
	httputil "huddle/pkg/http"
	"huddle/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// RoomHandler exposes the wall display API: the current view plus the
// actions its single button can trigger.
type RoomHandler struct {
	display   service.DisplayService
	lifecycle bookingservice.LifecycleService
	log       *logger.Logger
}

func NewRoomHandler(display service.DisplayService, lifecycle bookingservice.LifecycleService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		display:   display,
		lifecycle: lifecycle,
		log:       log,
	}
}

func (h *RoomHandler) GetView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	view, err := h.display.RoomView(r.Context())
	if err != nil {
		h.log.Error("Failed to compute room view", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, view)
}

type instantBookingRequest struct {
	BookerID string `json:"booker_id"`
	Name     string `json:"name"`
}

// InstantBook starts an impromptu meeting right now. The body is optional;
// a bare POST books for the walk-in identity.
func (h *RoomHandler) InstantBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req instantBookingRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error: "Invalid request body",
			})
			return
		}
	}
	if req.BookerID == "" {
		req.BookerID = config.WalkInBookerID
	}

	res, err := h.lifecycle.InstantBook(r.Context(), req.BookerID, req.Name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, res)
}

func (h *RoomHandler) StartMeeting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.lifecycle.MarkStarted(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *RoomHandler) EndMeeting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.lifecycle.MarkEnded(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

type stealRequest struct {
	BookerID string `json:"booker_id"`
}

// Steal removes an abandoned meeting and books the room for the taker.
func (h *RoomHandler) Steal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req stealRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error: "Invalid request body",
			})
			return
		}
	}
	if req.BookerID == "" {
		req.BookerID = config.WalkInBookerID
	}

	res, err := h.lifecycle.Steal(r.Context(), ps.ByName("id"), req.BookerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, res)
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/room", h.GetView)
	router.POST("/api/v1/room/bookings", h.InstantBook)
	router.POST("/api/v1/room/bookings/:id/start", h.StartMeeting)
	router.POST("/api/v1/room/bookings/:id/end", h.EndMeeting)
	router.POST("/api/v1/room/bookings/:id/steal", h.Steal)
}
