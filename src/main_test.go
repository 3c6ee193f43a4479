package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"ftb/src/lib"
	"ftb/src/middlewares"
	"ftb/src/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type TestSuite struct {
	suite.Suite
}

// fakeAuth stands in for the JWT middleware so handler paths that fail before
// any database access can be exercised directly.
func fakeAuth(userId uint, userType types.UserType, role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("id", userId)
		ctx.Set("email", "someone@example.com")
		ctx.Set("user_type", string(userType))
		ctx.Set("role", role)
	}
}

type stubGeocoder struct {
	lat, lon float64
	err      error
}

func (g stubGeocoder) Geocode(_ context.Context, _ string) (float64, float64, error) {
	return g.lat, g.lon, g.err
}

func (s *TestSuite) SetupSuite() {
	registerValidators()
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestCreateBookingValidation() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(fakeAuth(1, types.USER_ORGANIZER, "user"))
	bookingHandlers(apiv1)

	post := func(body map[string]any) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		sbody, _ := json.Marshal(&body)
		req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)
		return w
	}

	s.Run("Should reject an end date before the start date", func() {
		w := post(map[string]any{
			"profile_id":       1,
			"event_start_date": "2026-09-15",
			"event_end_date":   "2026-09-12",
		})
		assert.Equal(s.T(), 400, w.Code)

		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Should reject a malformed date", func() {
		w := post(map[string]any{
			"profile_id":       1,
			"event_start_date": "15.09.2026",
			"event_end_date":   "2026-09-16",
		})
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a missing profile id", func() {
		w := post(map[string]any{
			"event_start_date": "2026-09-15",
			"event_end_date":   "2026-09-16",
		})
		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestCreateBookingRequiresOrganizer() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(fakeAuth(2, types.USER_OWNER, "user"))
	bookingHandlers(apiv1)

	w := httptest.NewRecorder()
	body := `{"profile_id":1,"event_start_date":"2026-09-15","event_end_date":"2026-09-16"}`
	req, _ := http.NewRequest("POST", "/api/v1/bookings", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
}

func (s *TestSuite) TestSearchValidation() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	publicProfileHandlers(apiv1)

	s.Run("Should reject an unresolvable postal code", func() {
		lib.NewGeocoder(stubGeocoder{err: lib.ErrLocationNotFound})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/profiles?postal_code=00-950", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.Contains(s.T(), errMsg, "postal code")
	})

	s.Run("Should reject a lone event date", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/profiles?event_start_date=2026-09-15", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a rating outside 0..5", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/profiles?min_rating=7", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestCronEndpointsRequireSecret() {
	os.Setenv("CRON_SECRET", "topsecret")
	router := setupRouter()
	apiv1 := apiv1Group(router)
	cronHandlers(apiv1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/cron/reminders", nil)
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 401, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/v1/cron/invoices", nil)
	req.Header.Set("X-Cron-Secret", "wrong")
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 401, w.Code)
}

func (s *TestSuite) TestAdminRoutesRequireAdminRole() {
	router := setupRouter()
	admin := router.Group("/api/v1/admin")
	admin.Use(fakeAuth(1, types.USER_ORGANIZER, "user"), middlewares.AdminMiddleware)
	adminHandlers(admin)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/admin/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
