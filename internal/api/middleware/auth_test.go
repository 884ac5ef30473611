package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/pkg/token"
)

const testSecret = "secret"

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, *domain.Actor) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.Actor
	mw := Auth(token.NewCodec(testSecret))
	handler := mw(func(c echo.Context) error {
		a, ok := ActorFrom(c)
		if !ok {
			t.Fatalf("actor not set")
		}
		seen = &a
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestAuthMiddleware_UserToken(t *testing.T) {
	signed, _, err := token.NewCodec(testSecret).IssueUser(7, domain.RoleDoctor, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, actor := runAuth(t, "Bearer "+signed)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if actor == nil || actor.Role != domain.RoleDoctor || actor.UserID != 7 {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestAuthMiddleware_ServiceToken(t *testing.T) {
	signed, _, err := token.NewCodec(testSecret).IssueService(domain.RolePatient, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, actor := runAuth(t, "bearer "+signed)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if actor == nil || !actor.ActsAs(domain.RolePatient) {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, actor := runAuth(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if actor != nil {
		t.Fatalf("should not reach next")
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	rec, actor := runAuth(t, "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if actor != nil {
		t.Fatalf("should not reach next")
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec, actor := runAuth(t, "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if actor != nil {
		t.Fatalf("should not reach next")
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   1,
		"role": "admin",
		"iat":  past.Unix(),
		"exp":  past.Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec, actor := runAuth(t, "Bearer "+signed)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if actor != nil {
		t.Fatalf("should not reach next")
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	signed, _, err := token.NewCodec("other").IssueUser(1, domain.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, _ := runAuth(t, "Bearer "+signed)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
