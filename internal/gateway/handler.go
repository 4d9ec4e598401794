package gateway

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"shareit/internal/middleware"
	"shareit/internal/pkg/response"
)

// Handler validates request shape and format, then forwards to the core
// server through the client. Business rules stay on the server side.
type Handler struct {
	client *Client
	log    *zerolog.Logger
}

func NewHandler(client *Client, log *zerolog.Logger) *Handler {
	return &Handler{client: client, log: log}
}

// Router builds the gateway engine. User CRUD carries no identity
// header; everything else requires one.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(h.log), middleware.CORS())

	h.registerUserRoutes(r.Group("/"))

	identified := r.Group("/")
	identified.Use(middleware.Actor())
	h.registerItemRoutes(identified)
	h.registerBookingRoutes(identified)
	h.registerRequestRoutes(identified)

	return r
}

// relay forwards the request and writes the server's reply verbatim.
func (h *Handler) relay(c *gin.Context, method, path string, userID int64, query url.Values, body any) {
	status, data, err := h.client.Forward(c.Request.Context(), method, path, userID, query, body)
	if err != nil {
		h.log.Error().Err(err).Str("path", path).Msg("server call failed")
		response.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}

func positivePathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
