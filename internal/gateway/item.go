package gateway

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/middleware"
	"shareit/internal/pkg/response"
)

type createItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type createCommentRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

func (h *Handler) registerItemRoutes(rg *gin.RouterGroup) {
	rg.POST("/items", h.addItem)
	rg.PATCH("/items/:itemId", h.updateItem)
	rg.GET("/items/:itemId", h.getItem)
	rg.GET("/items", h.listItems)
	rg.GET("/items/search", h.searchItems)
	rg.POST("/items/:itemId/comment", h.addComment)
}

func (h *Handler) addItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "name, description and available are required")
		return
	}
	if req.RequestID != nil && *req.RequestID <= 0 {
		response.Error(c, http.StatusBadRequest, "requestId must be a positive integer")
		return
	}
	h.relay(c, http.MethodPost, "/items", middleware.ActorID(c), nil, req)
}

func (h *Handler) updateItem(c *gin.Context) {
	itemID, ok := positivePathID(c, "itemId")
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid item patch")
		return
	}
	h.relay(c, http.MethodPatch, "/items/"+strconv.FormatInt(itemID, 10), middleware.ActorID(c), nil, req)
}

func (h *Handler) getItem(c *gin.Context) {
	itemID, ok := positivePathID(c, "itemId")
	if !ok {
		return
	}
	h.relay(c, http.MethodGet, "/items/"+strconv.FormatInt(itemID, 10), middleware.ActorID(c), nil, nil)
}

func (h *Handler) listItems(c *gin.Context) {
	h.relay(c, http.MethodGet, "/items", middleware.ActorID(c), nil, nil)
}

func (h *Handler) searchItems(c *gin.Context) {
	h.relay(c, http.MethodGet, "/items/search", middleware.ActorID(c), url.Values{"text": {c.Query("text")}}, nil)
}

func (h *Handler) addComment(c *gin.Context) {
	itemID, ok := positivePathID(c, "itemId")
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "comment text is required and limited to 500 characters")
		return
	}
	h.relay(c, http.MethodPost, "/items/"+strconv.FormatInt(itemID, 10)+"/comment", middleware.ActorID(c), nil, req)
}
