package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/middleware"
	"shareit/internal/pkg/response"
)

type createRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *Handler) registerRequestRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests", h.createRequest)
	rg.GET("/requests", h.listOwnRequests)
	rg.GET("/requests/all", h.listAllRequests)
	rg.GET("/requests/:requestId", h.getRequest)
}

func (h *Handler) createRequest(c *gin.Context) {
	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "description is required")
		return
	}
	h.relay(c, http.MethodPost, "/requests", middleware.ActorID(c), nil, req)
}

func (h *Handler) listOwnRequests(c *gin.Context) {
	h.relay(c, http.MethodGet, "/requests", middleware.ActorID(c), nil, nil)
}

func (h *Handler) listAllRequests(c *gin.Context) {
	h.relay(c, http.MethodGet, "/requests/all", middleware.ActorID(c), nil, nil)
}

func (h *Handler) getRequest(c *gin.Context) {
	requestID, ok := positivePathID(c, "requestId")
	if !ok {
		return
	}
	h.relay(c, http.MethodGet, "/requests/"+strconv.FormatInt(requestID, 10), middleware.ActorID(c), nil, nil)
}
