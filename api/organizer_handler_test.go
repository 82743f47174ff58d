package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/talentbridge/command-center-backend/models"
)

type fakeOrganizerStore struct {
	byID    map[uuid.UUID]*models.Organizer
	updated *models.Organizer
}

func (s *fakeOrganizerStore) FindRecent(limit int) []*models.Organizer { return nil }

func (s *fakeOrganizerStore) FindByID(id uuid.UUID) (*models.Organizer, error) {
	organizer, ok := s.byID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return organizer, nil
}

func (s *fakeOrganizerStore) Add(organizer *models.Organizer) error { return nil }

func (s *fakeOrganizerStore) Update(organizer *models.Organizer) error {
	s.updated = organizer
	s.byID[organizer.ID] = organizer
	return nil
}

func (s *fakeOrganizerStore) Delete(id uuid.UUID) error { return nil }

func newTestOrganizerHandler(store organizerStore) organizerHandler {
	logger := zerolog.Nop()
	return organizerHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		organizerRepo: store,
	}
}

func putOrganizer(t *testing.T, handler organizerHandler, id uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/organizers/"+id.String(), strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("organizerID", id.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	recorder := httptest.NewRecorder()
	handler.updateOrganizer()(recorder, req)
	return recorder
}

func TestUpdateOrganizerKeepsActiveWhenOmitted(t *testing.T) {
	existing := activeOrganizer(models.RoleOrganizer)
	existing.FullName = "Sam Staff"
	existing.CreatedAt = time.Now().Add(-24 * time.Hour)
	store := &fakeOrganizerStore{byID: map[uuid.UUID]*models.Organizer{existing.ID: existing}}
	handler := newTestOrganizerHandler(store)

	recorder := putOrganizer(t, handler, existing.ID, `{"full_name":"Sam Q. Staff"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", recorder.Code, http.StatusOK, recorder.Body.String())
	}
	if store.updated == nil {
		t.Fatal("no update was written")
	}
	if !store.updated.IsActive {
		t.Error("organizer was deactivated by an update that never mentioned is_active")
	}
	if store.updated.FullName != "Sam Q. Staff" {
		t.Errorf("full name = %q, want the submitted value", store.updated.FullName)
	}
	if store.updated.Email != existing.Email || store.updated.AuthSubject != existing.AuthSubject {
		t.Error("omitted fields were not backfilled from the stored organizer")
	}
	if !store.updated.CreatedAt.Equal(existing.CreatedAt) {
		t.Error("created_at was not preserved")
	}
}

func TestUpdateOrganizerHonorsExplicitDeactivation(t *testing.T) {
	existing := activeOrganizer(models.RoleOrganizer)
	store := &fakeOrganizerStore{byID: map[uuid.UUID]*models.Organizer{existing.ID: existing}}
	handler := newTestOrganizerHandler(store)

	recorder := putOrganizer(t, handler, existing.ID, `{"is_active":false}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", recorder.Code, http.StatusOK, recorder.Body.String())
	}
	if store.updated == nil || store.updated.IsActive {
		t.Error("explicit is_active=false was not persisted")
	}
}

func TestUpdateOrganizerRejectsUnknownRole(t *testing.T) {
	existing := activeOrganizer(models.RoleOrganizer)
	store := &fakeOrganizerStore{byID: map[uuid.UUID]*models.Organizer{existing.ID: existing}}
	handler := newTestOrganizerHandler(store)

	recorder := putOrganizer(t, handler, existing.ID, `{"role":"superuser"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if store.updated != nil {
		t.Error("update was written despite an invalid role")
	}
}
