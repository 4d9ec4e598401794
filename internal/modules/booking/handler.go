package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/middleware"
	"shareit/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     *zerolog.Logger
}

func NewHandler(service *Service, log *zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.PATCH("/bookings/:bookingId", h.Decide)
	rg.GET("/bookings/:bookingId", h.Get)
	rg.GET("/bookings", h.ListForBooker)
	rg.GET("/bookings/owner", h.ListForOwner)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid booking payload")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.ActorID(c), req)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Decide(c *gin.Context) {
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	approve, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "approved must be true or false")
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), middleware.ActorID(c), bookingID, approve)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), middleware.ActorID(c), bookingID)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListForBooker(c *gin.Context) {
	state, ok := domain.ParseBookingState(c.Query("state"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "unknown state: "+c.Query("state"))
		return
	}

	resp, err := h.service.ListForBooker(c.Request.Context(), middleware.ActorID(c), state)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListForOwner(c *gin.Context) {
	state, ok := domain.ParseBookingState(c.Query("state"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "unknown state: "+c.Query("state"))
		return
	}

	resp, err := h.service.ListForOwner(c.Request.Context(), middleware.ActorID(c), state)
	if err != nil {
		response.FromError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
