package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/response"
)

// HeaderUserID carries the caller identity. It is trusted as-is;
// authentication is out of scope.
const HeaderUserID = "X-Sharer-User-Id"

const actorKey = "actor_id"

// Actor requires a positive integer user id in the identity header and
// stores it on the context.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderUserID)
		if raw == "" {
			response.AbortError(c, http.StatusBadRequest, "missing "+HeaderUserID+" header")
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.AbortError(c, http.StatusBadRequest, "user id must be a positive integer")
			return
		}
		c.Set(actorKey, id)
		c.Next()
	}
}

// ActorID returns the id stored by Actor.
func ActorID(c *gin.Context) int64 {
	return c.GetInt64(actorKey)
}
