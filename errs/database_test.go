package errs

import (
	"errors"
	"net/http"
	"testing"
)

func TestNewDatabaseErrorClassification(t *testing.T) {
	cases := []struct {
		name  string
		cause error
		want  int
	}{
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "students_email_key"`), http.StatusConflict},
		{"foreign key", errors.New(`insert or update on table "matches" violates foreign key constraint`), http.StatusBadRequest},
		{"not found", errors.New("record not found"), http.StatusNotFound},
		{"connection", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{"other", errors.New("syntax error at or near"), http.StatusInternalServerError},
		{"nil cause", nil, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := NewDatabaseError("create", "student", tc.cause)
			if apiErr.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tc.want)
			}
		})
	}
}

func TestApiErrUnwrap(t *testing.T) {
	apiErr := NewDatabaseError("find", "student", errors.New("dial tcp: connection refused"))
	if !errors.Is(apiErr, ErrDatabaseConnection) {
		t.Error("errors.Is() = false, want connection sentinel to match")
	}

	var target *ApiErr
	if !errors.As(error(apiErr), &target) {
		t.Error("errors.As() = false, want ApiErr to match")
	}
}

func TestGetFullErrorIncludesCause(t *testing.T) {
	cause := errors.New("underlying failure")
	apiErr := NewInternalErrorWithCause("operation failed", cause)
	full := apiErr.GetFullError()
	if full == apiErr.Error() {
		t.Errorf("GetFullError() = %q, want cause appended", full)
	}
}
