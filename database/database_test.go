package database

import (
	"errors"
	"testing"

	"github.com/talentbridge/command-center-backend/models"
)

func TestReadSoftReturnsRowsOnSuccess(t *testing.T) {
	rows := []*models.Student{{FirstName: "Ada"}, {FirstName: "Ben"}}

	got := readSoft("find recent students", "student", rows, nil)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
}

func TestReadSoftDegradesToEmptyOnError(t *testing.T) {
	rows := []*models.Student{{FirstName: "Ada"}}

	got := readSoft("find recent students", "student", rows, errors.New("connection refused"))
	if len(got) != 0 {
		t.Fatalf("rows = %d, want 0 on read failure", len(got))
	}
}
