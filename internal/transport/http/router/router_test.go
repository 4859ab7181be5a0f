package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/dineflow/table-service/internal/application/booking"
	"github.com/dineflow/table-service/internal/config"
	"github.com/dineflow/table-service/internal/domain"
	"github.com/dineflow/table-service/internal/transport/http/handlers"
	authmw "github.com/dineflow/table-service/internal/transport/http/middleware"
)

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC) }

type stubTables struct{}

func (stubTables) ListActive(ctx context.Context, areaID string) ([]domain.Table, error) {
	return []domain.Table{
		{ID: "t4", AreaID: "main", AreaName: "Main Dining", Capacity: 4, MinCapacity: 1, Active: true},
	}, nil
}

func (stubTables) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	return &domain.Table{ID: id, AreaID: "main", Capacity: 4, MinCapacity: 1, Active: true}, nil
}

type stubReservations struct{}

func (stubReservations) ListActiveForDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	return nil, nil
}

func (stubReservations) CommitAssignment(ctx context.Context, res *domain.Reservation) error {
	return nil
}

func (stubReservations) Release(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	return &domain.Reservation{ID: id, Status: status}, nil
}

type stubMaintenance struct{}

func (stubMaintenance) ListForDate(ctx context.Context, date string) ([]domain.MaintenanceWindow, error) {
	return nil, nil
}

type stubWaitlist struct{}

func (stubWaitlist) Create(ctx context.Context, e *domain.WaitlistEntry) error { return nil }
func (stubWaitlist) GetByID(ctx context.Context, id string) (*domain.WaitlistEntry, error) {
	return nil, domain.ErrNotFound("waitlist entry not found")
}
func (stubWaitlist) ListWaiting(ctx context.Context, date string) ([]*domain.WaitlistEntry, error) {
	return nil, nil
}
func (stubWaitlist) Update(ctx context.Context, e *domain.WaitlistEntry) error { return nil }
func (stubWaitlist) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

type stubCustomers struct{}

func (stubCustomers) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return &domain.Customer{ID: id}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := booking.New(stubTables{}, stubReservations{}, stubMaintenance{}, stubWaitlist{}, stubCustomers{}, nil, nil, stubClock{}, booking.Options{})
	h := handlers.NewBookingHandler(svc)
	auth := authmw.NewAuth("secret", "issuer")
	cfg := &config.Config{RLEnabled: false}
	return New(h, auth, handlers.NewHealthHandler(), cfg)
}

func staffToken(t *testing.T) string {
	t.Helper()
	claims := authmw.Claims{
		UserID: "staff-1",
		Role:   "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	assert.NoError(t, err)
	return ss
}

func TestRouter_Routing(t *testing.T) {
	r := newTestRouter(t)

	t.Run("healthz_is_public", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("metrics_is_exposed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("availability_is_public", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/booking/v1/availability?date=2026-09-05&time=19:00&party_size=2", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("assignments_require_auth", func(t *testing.T) {
		body := `{"date":"2026-09-05","time":"19:00","party_size":2}`
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("POST", "/booking/v1/assignments", strings.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("assignments_with_token_succeed", func(t *testing.T) {
		body := `{"date":"2026-09-05","time":"19:00","party_size":2}`
		req := httptest.NewRequest("POST", "/booking/v1/assignments", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+staffToken(t))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("responses_carry_request_id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
		assert.NotEmpty(t, rr.Header().Get(authmw.HeaderXRequestID))
	})

	t.Run("security_headers_are_set", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	})

	t.Run("unknown_route_returns_404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/booking/v1/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
