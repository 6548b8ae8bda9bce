package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"temple/internal/database"
	"temple/internal/domain"
	"temple/internal/middleware"
	"temple/internal/modules/admin"
	"temple/internal/modules/auth"
	"temple/internal/modules/booking"
	"temple/internal/modules/catalog"
	"temple/internal/modules/notification"
	jwtsvc "temple/internal/pkg/jwt"
	"temple/internal/repository"
)

type Suite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service

	ceremonyID int64
	userToken  string
	user2Token string
	adminToken string
	userID     int64
	user2ID    int64
	adminID    int64
}

type Envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupSuite(t *testing.T) *Suite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	ceremonyRepo := repository.NewCeremonyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	qnaRepo := repository.NewQnARepository(db)
	newsRepo := repository.NewNewsRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(ceremonyRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, ceremonyRepo))
	adminHandler := admin.NewHandler(admin.NewService(bookingRepo))
	notifHandler := notification.NewHandler(notification.NewService(bookingRepo, qnaRepo, newsRepo))

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				catalogHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	s := &Suite{router: r, db: db, jwt: j}

	ct := &domain.CeremonyType{Name: "Blessing ceremony", DurationMinutes: 60, IsActive: true}
	require.NoError(t, ceremonyRepo.Create(context.Background(), ct))
	s.ceremonyID = ct.ID

	s.userID, s.userToken = s.registerUser(t, "visitor@example.com")
	s.user2ID, s.user2Token = s.registerUser(t, "second@example.com")

	s.adminID, s.adminToken = s.registerUser(t, "admin@example.com")
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", s.adminID).Update("role", "admin").Error)
	s.adminToken = s.loginAs(t, "admin@example.com")

	return s
}

func (s *Suite) registerUser(t *testing.T, email string) (int64, string) {
	body := map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	}
	res := s.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var env Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	user := env.Data["user"].(map[string]interface{})
	return int64(user["id"].(float64)), env.Data["token"].(string)
}

func (s *Suite) loginAs(t *testing.T, email string) string {
	res := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var env Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	return env.Data["token"].(string)
}

func (s *Suite) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *Suite) submitBooking(t *testing.T, token, date, slot string) *httptest.ResponseRecorder {
	return s.do(t, http.MethodPost, "/api/v1/bookings", token, map[string]any{
		"booking_type_id": s.ceremonyID,
		"booking_date":    date,
		"booking_time":    slot,
		"full_name":       "Somsak P.",
		"phone":           "081-234-5678",
	})
}

func bookingFrom(t *testing.T, res *httptest.ResponseRecorder) map[string]interface{} {
	var env Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.NotNil(t, env.Data)
	b, ok := env.Data["booking"].(map[string]interface{})
	require.True(t, ok, "response has no booking payload")
	return b
}

func errCodeFrom(t *testing.T, res *httptest.ResponseRecorder) string {
	var env Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	return env.Error.Code
}

func TestDoubleSubmitSameSlot(t *testing.T) {
	s := setupSuite(t)

	res := s.submitBooking(t, s.userToken, "2025-01-10", "09:00")
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	b := bookingFrom(t, res)
	assert.Equal(t, "pending", b["status"])

	res = s.submitBooking(t, s.user2Token, "2025-01-10", "09:00")
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "SLOT_TAKEN", errCodeFrom(t, res))
}

func TestSubmitThenGetRoundTrip(t *testing.T) {
	s := setupSuite(t)

	res := s.submitBooking(t, s.userToken, "2025-01-10", "09:00")
	require.Equal(t, http.StatusCreated, res.Code)
	id := int64(bookingFrom(t, res)["id"].(float64))

	res = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", id), s.userToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	b := bookingFrom(t, res)
	assert.Equal(t, "pending", b["status"])
	assert.Nil(t, b["admin_id"])
	assert.Nil(t, b["responded_at"])
}

func TestAdminDecision(t *testing.T) {
	s := setupSuite(t)

	res := s.submitBooking(t, s.userToken, "2025-01-10", "09:00")
	require.Equal(t, http.StatusCreated, res.Code)
	id := int64(bookingFrom(t, res)["id"].(float64))

	res = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/bookings/%d/status", id), s.adminToken, map[string]string{
		"status":         "approved",
		"admin_response": "bring flowers",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	b := bookingFrom(t, res)
	assert.Equal(t, "approved", b["status"])
	assert.Equal(t, "bring flowers", b["admin_response"])
	assert.NotNil(t, b["responded_at"])

	// Second decision conflicts, winner stays.
	res = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/bookings/%d/status", id), s.adminToken, map[string]string{
		"status": "rejected",
	})
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "ALREADY_DECIDED", errCodeFrom(t, res))

	res = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", id), s.userToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "approved", bookingFrom(t, res)["status"])
}

func TestDecisionRequiresAdmin(t *testing.T) {
	s := setupSuite(t)

	res := s.submitBooking(t, s.userToken, "2025-01-10", "09:00")
	require.Equal(t, http.StatusCreated, res.Code)
	id := int64(bookingFrom(t, res)["id"].(float64))

	res = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/bookings/%d/status", id), s.userToken, map[string]string{
		"status": "approved",
	})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestOwnerCancel(t *testing.T) {
	s := setupSuite(t)

	res := s.submitBooking(t, s.userToken, "2025-01-10", "09:00")
	require.Equal(t, http.StatusCreated, res.Code)
	id := int64(bookingFrom(t, res)["id"].(float64))

	// Non-owner cancel is forbidden and changes nothing.
	res = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/cancel", id), s.user2Token, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/cancel", id), s.userToken, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.Equal(t, "cancelled", bookingFrom(t, res)["status"])

	res = s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/cancel", id), s.userToken, nil)
	assert.Equal(t, http.StatusConflict, res.Code)
	assert.Equal(t, "ALREADY_DECIDED", errCodeFrom(t, res))
}

func TestAdminNotificationSummary(t *testing.T) {
	s := setupSuite(t)

	require.Equal(t, http.StatusCreated, s.submitBooking(t, s.userToken, "2025-01-10", "09:00").Code)
	require.Equal(t, http.StatusCreated, s.submitBooking(t, s.userToken, "2025-01-10", "10:00").Code)
	require.Equal(t, http.StatusCreated, s.submitBooking(t, s.user2Token, "2025-01-11", "09:00").Code)

	require.NoError(t, s.db.Create(&domain.QnAThread{UserID: s.userID, Question: "Opening hours?"}).Error)
	require.NoError(t, s.db.Create(&domain.QnAThread{UserID: s.user2ID, Question: "Group ceremonies?"}).Error)

	res := s.do(t, http.MethodGet, "/api/v1/notifications/summary", s.adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	assert.Equal(t, float64(5), env.Data["unreadCount"])
	items := env.Data["items"].([]interface{})
	require.Len(t, items, 5)
}

func TestUserNotificationSummary(t *testing.T) {
	s := setupSuite(t)

	require.Equal(t, http.StatusCreated, s.submitBooking(t, s.userToken, "2025-01-10", "09:00").Code)

	publishedAt := time.Now().Add(-time.Hour)
	require.NoError(t, s.db.Create(&domain.NewsItem{
		Title: "Festival", Body: "Annual festival next month", IsPublished: true, PublishedAt: &publishedAt,
	}).Error)
	require.NoError(t, s.db.Create(&domain.NewsItem{
		Title: "Draft", Body: "Unpublished", IsPublished: false,
	}).Error)

	res := s.do(t, http.MethodGet, "/api/v1/notifications/summary", s.userToken, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	assert.Equal(t, float64(2), env.Data["unreadCount"])

	items := env.Data["items"].([]interface{})
	require.Len(t, items, 2)
	types := map[string]bool{}
	for _, it := range items {
		types[it.(map[string]interface{})["type"].(string)] = true
	}
	assert.True(t, types["news"])
	assert.True(t, types["booking_status"])
}

func TestBookingStats(t *testing.T) {
	s := setupSuite(t)

	require.Equal(t, http.StatusCreated, s.submitBooking(t, s.userToken, "2025-01-10", "09:00").Code)
	require.Equal(t, http.StatusCreated, s.submitBooking(t, s.userToken, "2025-01-10", "10:00").Code)

	res := s.do(t, http.MethodGet, "/api/v1/admin/bookings/stats", s.adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	stats := env.Data["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total"])
	assert.Equal(t, float64(2), stats["pending"])
}

func TestInactiveCeremonyRejected(t *testing.T) {
	s := setupSuite(t)

	res := s.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/ceremonies/%d/deactivate", s.ceremonyID), s.adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	res = s.submitBooking(t, s.userToken, "2025-01-10", "09:00")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "CEREMONY_NOT_FOUND", errCodeFrom(t, res))
}
