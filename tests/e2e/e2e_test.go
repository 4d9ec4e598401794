package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/database"
	"shareit/internal/middleware"
	"shareit/internal/modules/booking"
	"shareit/internal/modules/item"
	"shareit/internal/modules/request"
	"shareit/internal/modules/user"
	"shareit/internal/pkg/logging"
	"shareit/internal/repository"
)

type suite struct {
	router *gin.Engine
}

func setupSuite(t *testing.T) *suite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "connect test database")
	require.NoError(t, repository.Migrate(db), "migrate test database")

	log := logging.New("shareit-e2e", zerolog.Disabled.String())

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, log), log)
	itemHandler := item.NewHandler(
		item.NewService(itemRepo, userRepo, requestRepo, bookingRepo, commentRepo, log), log)
	bookingHandler := booking.NewHandler(
		booking.NewService(bookingRepo, userRepo, itemRepo, log), log)
	requestHandler := request.NewHandler(
		request.NewService(requestRepo, userRepo, itemRepo, log), log)

	r := gin.New()
	r.Use(gin.Recovery())

	userHandler.RegisterRoutes(r.Group("/"))

	identified := r.Group("/")
	identified.Use(middleware.Actor())
	itemHandler.RegisterRoutes(identified)
	bookingHandler.RegisterRoutes(identified)
	requestHandler.RegisterRoutes(identified)

	return &suite{router: r}
}

func (s *suite) request(t *testing.T, method, path string, userID int64, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set(middleware.HeaderUserID, strconv.FormatInt(userID, 10))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func objectID(t *testing.T, obj map[string]any) int64 {
	t.Helper()
	id, ok := obj["id"].(float64)
	require.True(t, ok, "no id in %v", obj)
	return int64(id)
}

func (s *suite) createUser(t *testing.T, name, email string) int64 {
	t.Helper()
	w := s.request(t, http.MethodPost, "/users", 0, map[string]any{"name": name, "email": email})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	return objectID(t, decodeObject(t, w))
}

func (s *suite) createItem(t *testing.T, ownerID int64, name string, available bool) int64 {
	t.Helper()
	w := s.request(t, http.MethodPost, "/items", ownerID, map[string]any{
		"name":        name,
		"description": name + " in good condition",
		"available":   available,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	return objectID(t, decodeObject(t, w))
}

func (s *suite) createBooking(t *testing.T, bookerID, itemID int64, start, end time.Time) int64 {
	t.Helper()
	w := s.request(t, http.MethodPost, "/bookings", bookerID, map[string]any{
		"itemId": itemID,
		"start":  start.Format(time.RFC3339),
		"end":    end.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	return objectID(t, decodeObject(t, w))
}

func TestFlowUserLifecycle(t *testing.T) {
	s := setupSuite(t)

	aliceID := s.createUser(t, "alice", "alice@example.com")

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := s.request(t, http.MethodPost, "/users", 0, map[string]any{
			"name": "impostor", "email": "alice@example.com",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeObject(t, w)
		assert.Equal(t, float64(http.StatusConflict), body["code"])
		assert.NotEmpty(t, body["error"])
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		w := s.request(t, http.MethodPost, "/users", 0, map[string]any{
			"name": "bob", "email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("patch keeps untouched fields", func(t *testing.T) {
		w := s.request(t, http.MethodPatch, fmt.Sprintf("/users/%d", aliceID), 0, map[string]any{
			"email": "alice@new.example.com",
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeObject(t, w)
		assert.Equal(t, "alice", body["name"])
		assert.Equal(t, "alice@new.example.com", body["email"])
	})

	t.Run("delete then fetch", func(t *testing.T) {
		w := s.request(t, http.MethodDelete, fmt.Sprintf("/users/%d", aliceID), 0, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.request(t, http.MethodGet, fmt.Sprintf("/users/%d", aliceID), 0, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlowItemLifecycle(t *testing.T) {
	s := setupSuite(t)

	ownerID := s.createUser(t, "owner", "owner@example.com")
	otherID := s.createUser(t, "other", "other@example.com")
	itemID := s.createItem(t, ownerID, "drill", true)

	t.Run("search finds available items", func(t *testing.T) {
		w := s.request(t, http.MethodGet, "/items/search?text=DRILL", otherID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)
	})

	t.Run("non-owner patch is not found", func(t *testing.T) {
		w := s.request(t, http.MethodPatch, fmt.Sprintf("/items/%d", itemID), otherID, map[string]any{
			"name": "stolen drill",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner hides the item", func(t *testing.T) {
		w := s.request(t, http.MethodPatch, fmt.Sprintf("/items/%d", itemID), ownerID, map[string]any{
			"available": false,
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = s.request(t, http.MethodGet, "/items/search?text=drill", otherID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))
	})

	t.Run("blank search text yields empty list", func(t *testing.T) {
		w := s.request(t, http.MethodGet, "/items/search?text=", otherID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))
	})
}

func TestFlowBookingLifecycle(t *testing.T) {
	s := setupSuite(t)

	ownerID := s.createUser(t, "owner", "owner@example.com")
	bookerID := s.createUser(t, "booker", "booker@example.com")
	strangerID := s.createUser(t, "stranger", "stranger@example.com")
	itemID := s.createItem(t, ownerID, "drill", true)

	start := time.Now().Add(24 * time.Hour)
	bookingID := s.createBooking(t, bookerID, itemID, start, start.Add(2*time.Hour))

	t.Run("created booking is waiting", func(t *testing.T) {
		w := s.request(t, http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), bookerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeObject(t, w)
		assert.Equal(t, "WAITING", body["status"])
		assert.Equal(t, float64(itemID), body["item"].(map[string]any)["id"])
		assert.Equal(t, float64(bookerID), body["booker"].(map[string]any)["id"])
	})

	t.Run("stranger may not view the booking", func(t *testing.T) {
		w := s.request(t, http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), strangerID, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("booker may not approve", func(t *testing.T) {
		w := s.request(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), bookerID, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner approves once", func(t *testing.T) {
		w := s.request(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", bookingID), ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "APPROVED", decodeObject(t, w)["status"])

		w = s.request(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=false", bookingID), ownerID, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("state listings", func(t *testing.T) {
		w := s.request(t, http.MethodGet, "/bookings?state=FUTURE", bookerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)

		w = s.request(t, http.MethodGet, "/bookings?state=PAST", bookerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))

		w = s.request(t, http.MethodGet, "/bookings/owner", ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)

		w = s.request(t, http.MethodGet, "/bookings/owner", strangerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))
	})

	t.Run("unavailable item cannot be booked", func(t *testing.T) {
		hiddenID := s.createItem(t, ownerID, "saw", false)
		w := s.request(t, http.MethodPost, "/bookings", bookerID, map[string]any{
			"itemId": hiddenID,
			"start":  start.Format(time.RFC3339),
			"end":    start.Add(time.Hour).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFlowCommentsAndOwnerView(t *testing.T) {
	s := setupSuite(t)

	ownerID := s.createUser(t, "owner", "owner@example.com")
	bookerID := s.createUser(t, "booker", "booker@example.com")
	itemID := s.createItem(t, ownerID, "drill", true)

	now := time.Now()

	// A completed booking: date-range shape is validated at the edge, so
	// the core accepts past dates, which is exactly what replaying
	// history needs.
	pastID := s.createBooking(t, bookerID, itemID, now.Add(-48*time.Hour), now.Add(-46*time.Hour))
	w := s.request(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", pastID), ownerID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	futureID := s.createBooking(t, bookerID, itemID, now.Add(24*time.Hour), now.Add(26*time.Hour))
	w = s.request(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", futureID), ownerID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("owner without completed booking may not comment", func(t *testing.T) {
		w := s.request(t, http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), ownerID, map[string]any{
			"text": "my own drill is great",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("booker comments after completed booking", func(t *testing.T) {
		w := s.request(t, http.MethodPost, fmt.Sprintf("/items/%d/comment", itemID), bookerID, map[string]any{
			"text": "works great",
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeObject(t, w)
		assert.Equal(t, "works great", body["text"])
		assert.Equal(t, "booker", body["authorName"])
	})

	t.Run("owner sees booking dates", func(t *testing.T) {
		w := s.request(t, http.MethodGet, fmt.Sprintf("/items/%d", itemID), ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeObject(t, w)
		assert.NotNil(t, body["lastBooking"])
		assert.NotNil(t, body["nextBooking"])
		require.Len(t, body["comments"], 1)
	})

	t.Run("non-owner sees no booking dates", func(t *testing.T) {
		w := s.request(t, http.MethodGet, fmt.Sprintf("/items/%d", itemID), bookerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeObject(t, w)
		_, hasLast := body["lastBooking"]
		_, hasNext := body["nextBooking"]
		assert.False(t, hasLast)
		assert.False(t, hasNext)
		require.Len(t, body["comments"], 1)
	})

	t.Run("owner listing carries dates per item", func(t *testing.T) {
		w := s.request(t, http.MethodGet, "/items", ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		items := decodeList(t, w)
		require.Len(t, items, 1)
		assert.NotNil(t, items[0]["lastBooking"])
		assert.NotNil(t, items[0]["nextBooking"])
	})
}

func TestFlowItemRequests(t *testing.T) {
	s := setupSuite(t)

	ownerID := s.createUser(t, "owner", "owner@example.com")
	requestorID := s.createUser(t, "requestor", "requestor@example.com")

	w := s.request(t, http.MethodPost, "/requests", requestorID, map[string]any{
		"description": "need a ladder for a weekend",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	requestID := objectID(t, decodeObject(t, w))

	t.Run("others see the request, the requestor does not", func(t *testing.T) {
		w := s.request(t, http.MethodGet, "/requests/all", ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeList(t, w), 1)

		w = s.request(t, http.MethodGet, "/requests/all", requestorID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeList(t, w))
	})

	t.Run("item answers the request", func(t *testing.T) {
		w := s.request(t, http.MethodPost, "/items", ownerID, map[string]any{
			"name":        "ladder",
			"description": "6m aluminium ladder",
			"available":   true,
			"requestId":   requestID,
		})
		require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

		w = s.request(t, http.MethodGet, "/requests", requestorID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		own := decodeList(t, w)
		require.Len(t, own, 1)
		answers := own[0]["items"].([]any)
		require.Len(t, answers, 1)
		assert.Equal(t, "ladder", answers[0].(map[string]any)["name"])
	})

	t.Run("request by id includes answers", func(t *testing.T) {
		w := s.request(t, http.MethodGet, fmt.Sprintf("/requests/%d", requestID), ownerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeObject(t, w)
		assert.Len(t, body["items"], 1)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		w := s.request(t, http.MethodGet, "/requests/9999", ownerID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("item for unknown request is not found", func(t *testing.T) {
		w := s.request(t, http.MethodPost, "/items", ownerID, map[string]any{
			"name":        "tent",
			"description": "2 person tent",
			"available":   true,
			"requestId":   9999,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
