package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/talentbridge/command-center-backend/models"
)

const testSecret = "test-secret"

type fakeOrganizerSource struct {
	organizers map[string]*models.Organizer
	lookupErr  error
}

func (s *fakeOrganizerSource) FindByAuthSubject(subject string) (*models.Organizer, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	organizer, ok := s.organizers[subject]
	if !ok {
		return nil, errors.New("record not found")
	}
	return organizer, nil
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func gateRequest(t *testing.T, gate accessGate, path, token string) (*httptest.ResponseRecorder, *Access) {
	t.Helper()
	var seen *Access
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if access, ok := AccessFromCtx(r.Context()); ok {
			seen = &access
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	recorder := httptest.NewRecorder()
	gate.guard(next).ServeHTTP(recorder, req)
	return recorder, seen
}

func activeOrganizer(role string) *models.Organizer {
	return &models.Organizer{
		ID:          uuid.New(),
		Email:       "staff@example.com",
		Role:        role,
		IsActive:    true,
		AuthSubject: "subject-1",
	}
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	gate := newAccessGate(testSecret, &fakeOrganizerSource{})

	recorder, _ := gateRequest(t, gate, "/students", "")
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
	}
	if got := recorder.Header().Get("Location"); got != "/login" {
		t.Errorf("redirect = %q, want /login", got)
	}
}

func TestGateAllowsAnonymousPublicPaths(t *testing.T) {
	gate := newAccessGate(testSecret, &fakeOrganizerSource{})

	for _, path := range []string{"/login", "/auth/callback", "/api/health"} {
		recorder, _ := gateRequest(t, gate, path, "")
		if recorder.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", path, recorder.Code, http.StatusOK)
		}
	}
}

func TestGateRedirectsAuthenticatedAwayFromLogin(t *testing.T) {
	source := &fakeOrganizerSource{organizers: map[string]*models.Organizer{
		"subject-1": activeOrganizer(models.RoleOrganizer),
	}}
	gate := newAccessGate(testSecret, source)

	recorder, _ := gateRequest(t, gate, "/login", signToken(t, "subject-1"))
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
	}
	if got := recorder.Header().Get("Location"); got != "/" {
		t.Errorf("redirect = %q, want /", got)
	}
}

func TestGateRejectsBadToken(t *testing.T) {
	gate := newAccessGate(testSecret, &fakeOrganizerSource{})

	recorder, _ := gateRequest(t, gate, "/students", "not-a-jwt")
	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
	}
	if got := recorder.Header().Get("Location"); got != "/login" {
		t.Errorf("redirect = %q, want /login", got)
	}
	if !sessionCookieCleared(recorder) {
		t.Error("stale session cookie was not cleared")
	}
}

// A browser left holding an expired or garbage cookie must still be able
// to render the login page, not bounce between / and /login.
func TestGateWithStaleTokenReachesLogin(t *testing.T) {
	gate := newAccessGate(testSecret, &fakeOrganizerSource{})

	recorder, _ := gateRequest(t, gate, "/login", "stale-garbage-token")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (redirected to %q)", recorder.Code, http.StatusOK, recorder.Header().Get("Location"))
	}
	if !sessionCookieCleared(recorder) {
		t.Error("stale session cookie was not cleared")
	}
}

func sessionCookieCleared(recorder *httptest.ResponseRecorder) bool {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == sessionCookieName && cookie.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestGateRejectsUnknownAndInactiveOrganizers(t *testing.T) {
	inactive := activeOrganizer(models.RoleOrganizer)
	inactive.IsActive = false

	cases := map[string]*fakeOrganizerSource{
		"unknown subject": {organizers: map[string]*models.Organizer{}},
		"lookup error":    {lookupErr: errors.New("connection refused")},
		"inactive":        {organizers: map[string]*models.Organizer{"subject-1": inactive}},
	}
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			gate := newAccessGate(testSecret, source)
			recorder, _ := gateRequest(t, gate, "/students", signToken(t, "subject-1"))
			if recorder.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
			}
			if got := recorder.Header().Get("Location"); got != "/login" {
				t.Errorf("redirect = %q, want /login", got)
			}
		})
	}
}

func TestGateBlocksNonAdminFromAdminPaths(t *testing.T) {
	source := &fakeOrganizerSource{organizers: map[string]*models.Organizer{
		"subject-1": activeOrganizer(models.RoleOrganizer),
	}}
	gate := newAccessGate(testSecret, source)

	for _, path := range []string{"/settings", "/analytics", "/ai/interactions", "/users"} {
		recorder, _ := gateRequest(t, gate, path, signToken(t, "subject-1"))
		if recorder.Code != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want %d", path, recorder.Code, http.StatusSeeOther)
			continue
		}
		if got := recorder.Header().Get("Location"); got != "/" {
			t.Errorf("%s: redirect = %q, want /", path, got)
		}
	}
}

func TestGatePassesAdminWithAccessInContext(t *testing.T) {
	admin := activeOrganizer(models.RoleAdmin)
	source := &fakeOrganizerSource{organizers: map[string]*models.Organizer{
		"subject-1": admin,
	}}
	gate := newAccessGate(testSecret, source)

	recorder, access := gateRequest(t, gate, "/settings", signToken(t, "subject-1"))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	if access == nil {
		t.Fatal("no access decision in context")
	}
	if access.OrganizerID != admin.ID || access.Role != models.RoleAdmin {
		t.Errorf("access = %+v, want organizer %s with admin role", access, admin.ID)
	}
}

func TestGateAcceptsBearerToken(t *testing.T) {
	organizer := activeOrganizer(models.RoleOrganizer)
	source := &fakeOrganizerSource{organizers: map[string]*models.Organizer{
		"subject-1": organizer,
	}}
	gate := newAccessGate(testSecret, source)

	var seen *Access
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if access, ok := AccessFromCtx(r.Context()); ok {
			seen = &access
		}
	})
	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "subject-1"))
	recorder := httptest.NewRecorder()
	gate.guard(next).ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	if seen == nil || seen.OrganizerID != organizer.ID {
		t.Errorf("access = %+v, want organizer %s", seen, organizer.ID)
	}
}
