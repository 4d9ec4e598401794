package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/response"
)

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

func (h *Handler) registerUserRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.createUser)
	rg.PATCH("/users/:userId", h.updateUser)
	rg.GET("/users/:userId", h.getUser)
	rg.DELETE("/users/:userId", h.deleteUser)
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "name and a valid email are required")
		return
	}
	h.relay(c, http.MethodPost, "/users", 0, nil, req)
}

func (h *Handler) updateUser(c *gin.Context) {
	userID, ok := positivePathID(c, "userId")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user patch")
		return
	}
	h.relay(c, http.MethodPatch, "/users/"+strconv.FormatInt(userID, 10), 0, nil, req)
}

func (h *Handler) getUser(c *gin.Context) {
	userID, ok := positivePathID(c, "userId")
	if !ok {
		return
	}
	h.relay(c, http.MethodGet, "/users/"+strconv.FormatInt(userID, 10), 0, nil, nil)
}

func (h *Handler) deleteUser(c *gin.Context) {
	userID, ok := positivePathID(c, "userId")
	if !ok {
		return
	}
	h.relay(c, http.MethodDelete, "/users/"+strconv.FormatInt(userID, 10), 0, nil, nil)
}
