package gateway

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shareit/internal/domain"
	"shareit/internal/middleware"
	"shareit/internal/pkg/response"
)

// startGrace tolerates clock skew between the caller and the gateway
// when rejecting bookings that start in the past.
const startGrace = 5 * time.Second

type bookItemRequest struct {
	ItemID int64      `json:"itemId" binding:"required"`
	Start  *time.Time `json:"start" binding:"required"`
	End    *time.Time `json:"end" binding:"required"`
}

func (h *Handler) registerBookingRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.bookItem)
	rg.PATCH("/bookings/:bookingId", h.decideBooking)
	rg.GET("/bookings/:bookingId", h.getBooking)
	rg.GET("/bookings", h.listBookings)
	rg.GET("/bookings/owner", h.listOwnerBookings)
}

// Canonical date rule: both ends required, end strictly after start,
// start no earlier than now minus a small grace window.
func (h *Handler) bookItem(c *gin.Context) {
	var req bookItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "itemId, start and end are required")
		return
	}
	if req.ItemID <= 0 {
		response.Error(c, http.StatusBadRequest, "itemId must be a positive integer")
		return
	}
	if !req.End.After(*req.Start) {
		response.Error(c, http.StatusBadRequest, "booking end must be after its start")
		return
	}
	if req.Start.Before(time.Now().Add(-startGrace)) {
		response.Error(c, http.StatusBadRequest, "booking must not start in the past")
		return
	}

	h.relay(c, http.MethodPost, "/bookings", middleware.ActorID(c), nil, req)
}

func (h *Handler) decideBooking(c *gin.Context) {
	bookingID, ok := positivePathID(c, "bookingId")
	if !ok {
		return
	}
	approved := c.Query("approved")
	if _, err := strconv.ParseBool(approved); err != nil {
		response.Error(c, http.StatusBadRequest, "approved must be true or false")
		return
	}

	query := url.Values{"approved": {approved}}
	h.relay(c, http.MethodPatch, "/bookings/"+strconv.FormatInt(bookingID, 10), middleware.ActorID(c), query, nil)
}

func (h *Handler) getBooking(c *gin.Context) {
	bookingID, ok := positivePathID(c, "bookingId")
	if !ok {
		return
	}
	h.relay(c, http.MethodGet, "/bookings/"+strconv.FormatInt(bookingID, 10), middleware.ActorID(c), nil, nil)
}

func (h *Handler) listBookings(c *gin.Context) {
	state, ok := domain.ParseBookingState(c.Query("state"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "unknown state: "+c.Query("state"))
		return
	}
	h.relay(c, http.MethodGet, "/bookings", middleware.ActorID(c), url.Values{"state": {string(state)}}, nil)
}

func (h *Handler) listOwnerBookings(c *gin.Context) {
	state, ok := domain.ParseBookingState(c.Query("state"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "unknown state: "+c.Query("state"))
		return
	}
	h.relay(c, http.MethodGet, "/bookings/owner", middleware.ActorID(c), url.Values{"state": {string(state)}}, nil)
}
