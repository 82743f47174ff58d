package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type fakePresigner struct {
	enabled bool
	calls   int
}

func (f *fakePresigner) Enabled() bool {
	return f.enabled
}

func (f *fakePresigner) UploadURL(ctx context.Context, studentID uuid.UUID, kind, contentType string) (string, error) {
	f.calls++
	return "https://bucket.example.com/put", nil
}

func (f *fakePresigner) DownloadURL(ctx context.Context, studentID uuid.UUID, kind string) (string, error) {
	f.calls++
	return "https://bucket.example.com/get", nil
}

func newTestDocumentHandler(presign presigner) documentHandler {
	logger := zerolog.Nop()
	return documentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		documents: presign,
	}
}

func TestUploadURLRejectsUnknownKind(t *testing.T) {
	presign := &fakePresigner{enabled: true}
	handler := newTestDocumentHandler(presign)

	body := `{"student_id": "` + uuid.New().String() + `", "kind": "passport"}`
	req := httptest.NewRequest(http.MethodPost, "/documents/upload-url", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.uploadURL()(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if presign.calls != 0 {
		t.Errorf("presign calls = %d, want 0", presign.calls)
	}
}

func TestUploadURLRequiresStudentID(t *testing.T) {
	presign := &fakePresigner{enabled: true}
	handler := newTestDocumentHandler(presign)

	req := httptest.NewRequest(http.MethodPost, "/documents/upload-url", strings.NewReader(`{"kind": "resume"}`))
	recorder := httptest.NewRecorder()
	handler.uploadURL()(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if presign.calls != 0 {
		t.Errorf("presign calls = %d, want 0", presign.calls)
	}
}

func TestDocumentEndpointsRequireConfiguredBucket(t *testing.T) {
	handler := newTestDocumentHandler(&fakePresigner{enabled: false})

	req := httptest.NewRequest(http.MethodPost, "/documents/upload-url", strings.NewReader(`{}`))
	recorder := httptest.NewRecorder()
	handler.uploadURL()(recorder, req)
	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("upload: status = %d, want %d", recorder.Code, http.StatusServiceUnavailable)
	}

	recorder = httptest.NewRecorder()
	handler.downloadURL()(recorder, httptest.NewRequest(http.MethodGet, "/documents/download-url", nil))
	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("download: status = %d, want %d", recorder.Code, http.StatusServiceUnavailable)
	}
}

func TestDownloadURLValidatesQuery(t *testing.T) {
	presign := &fakePresigner{enabled: true}
	handler := newTestDocumentHandler(presign)

	for _, target := range []string{
		"/documents/download-url?kind=resume",
		"/documents/download-url?student_id=" + uuid.New().String() + "&kind=passport",
	} {
		recorder := httptest.NewRecorder()
		handler.downloadURL()(recorder, httptest.NewRequest(http.MethodGet, target, nil))
		if recorder.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, recorder.Code, http.StatusBadRequest)
		}
	}
	if presign.calls != 0 {
		t.Errorf("presign calls = %d, want 0", presign.calls)
	}
}
