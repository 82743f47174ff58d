package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/talentbridge/command-center-backend/models"
)

type fakeSessionOrganizers struct {
	fakeOrganizerSource
	byID    map[uuid.UUID]*models.Organizer
	touched []uuid.UUID
}

func (s *fakeSessionOrganizers) FindByID(id uuid.UUID) (*models.Organizer, error) {
	organizer, ok := s.byID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return organizer, nil
}

func (s *fakeSessionOrganizers) TouchLastLogin(id uuid.UUID) error {
	s.touched = append(s.touched, id)
	return nil
}

func newTestSessionHandler(organizers sessionOrganizers) sessionHandler {
	logger := zerolog.Nop()
	return sessionHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		secret:     []byte(testSecret),
		organizers: organizers,
	}
}

func TestCallbackSetsSessionCookie(t *testing.T) {
	organizer := activeOrganizer(models.RoleOrganizer)
	organizers := &fakeSessionOrganizers{
		fakeOrganizerSource: fakeOrganizerSource{organizers: map[string]*models.Organizer{
			"subject-1": organizer,
		}},
	}
	handler := newTestSessionHandler(organizers)

	token := signToken(t, "subject-1")
	req := httptest.NewRequest(http.MethodGet, "/auth/callback?access_token="+token, nil)
	recorder := httptest.NewRecorder()
	handler.callback()(recorder, req)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusSeeOther)
	}
	if got := recorder.Header().Get("Location"); got != "/" {
		t.Errorf("redirect = %q, want /", got)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("no session cookie set")
	}
	if sessionCookie.Value != token {
		t.Errorf("cookie value does not carry the session token")
	}
	if !sessionCookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	if len(organizers.touched) != 1 || organizers.touched[0] != organizer.ID {
		t.Errorf("TouchLastLogin calls = %v, want the organizer's id once", organizers.touched)
	}
}

func TestCallbackRejectsBadOrMissingToken(t *testing.T) {
	organizers := &fakeSessionOrganizers{}
	handler := newTestSessionHandler(organizers)

	for _, target := range []string{
		"/auth/callback",
		"/auth/callback?access_token=not-a-jwt",
	} {
		recorder := httptest.NewRecorder()
		handler.callback()(recorder, httptest.NewRequest(http.MethodGet, target, nil))

		if recorder.Code != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want %d", target, recorder.Code, http.StatusSeeOther)
			continue
		}
		if got := recorder.Header().Get("Location"); got != "/login" {
			t.Errorf("%s: redirect = %q, want /login", target, got)
		}
		if len(recorder.Result().Cookies()) != 0 {
			t.Errorf("%s: cookie set for rejected callback", target)
		}
	}
}

func TestCallbackRejectsInactiveOrganizer(t *testing.T) {
	inactive := activeOrganizer(models.RoleOrganizer)
	inactive.IsActive = false
	organizers := &fakeSessionOrganizers{
		fakeOrganizerSource: fakeOrganizerSource{organizers: map[string]*models.Organizer{
			"subject-1": inactive,
		}},
	}
	handler := newTestSessionHandler(organizers)

	recorder := httptest.NewRecorder()
	handler.callback()(recorder, httptest.NewRequest(http.MethodGet, "/auth/callback?access_token="+signToken(t, "subject-1"), nil))

	if got := recorder.Header().Get("Location"); got != "/login" {
		t.Errorf("redirect = %q, want /login", got)
	}
	if len(organizers.touched) != 0 {
		t.Errorf("TouchLastLogin called for inactive organizer")
	}
}

func TestMeReturnsAuthenticatedOrganizer(t *testing.T) {
	organizer := activeOrganizer(models.RoleAdmin)
	organizers := &fakeSessionOrganizers{
		byID: map[uuid.UUID]*models.Organizer{organizer.ID: organizer},
	}
	handler := newTestSessionHandler(organizers)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(ctxWithAccess(req.Context(), Access{OrganizerID: organizer.ID, Role: organizer.Role}))
	recorder := httptest.NewRecorder()
	handler.me()(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", recorder.Code, http.StatusOK, recorder.Body.String())
	}
}

func TestMeWithoutSession(t *testing.T) {
	handler := newTestSessionHandler(&fakeSessionOrganizers{})

	recorder := httptest.NewRecorder()
	handler.me()(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}
