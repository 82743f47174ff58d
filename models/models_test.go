package models

import "testing"

func TestStudentFullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}
	for _, tc := range cases {
		student := Student{FirstName: tc.first, LastName: tc.last}
		if got := student.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestStatusValidators(t *testing.T) {
	for _, status := range StudentStatuses {
		if !ValidStudentStatus(status) {
			t.Errorf("ValidStudentStatus(%q) = false", status)
		}
	}
	if ValidStudentStatus("archived") {
		t.Error("ValidStudentStatus(archived) = true, want false")
	}

	for _, status := range MatchStatuses {
		if !ValidMatchStatus(status) {
			t.Errorf("ValidMatchStatus(%q) = false", status)
		}
	}
	if ValidMatchStatus("") {
		t.Error("ValidMatchStatus(empty) = true, want false")
	}

	for _, status := range ApplicationStatuses {
		if !ValidApplicationStatus(status) {
			t.Errorf("ValidApplicationStatus(%q) = false", status)
		}
	}

	if !ValidRole(RoleAdmin) || !ValidRole(RoleOrganizer) || ValidRole("superuser") {
		t.Error("ValidRole accepts only admin and organizer")
	}
}

func TestGetModelColumnsUsesDBTags(t *testing.T) {
	columns := getModelColumns(Organizer{})

	want := map[string]bool{"id": true, "email": true, "auth_subject": true, "last_login": true}
	got := make(map[string]bool, len(columns))
	for _, col := range columns {
		got[col] = true
	}
	for col := range want {
		if !got[col] {
			t.Errorf("missing column %q in %v", col, columns)
		}
	}
}

func TestFindColumnMismatches(t *testing.T) {
	mismatches := findColumnMismatches(
		[]string{"id", "email", "legacy_flag"},
		[]string{"id", "email"},
	)
	if len(mismatches) != 1 || mismatches[0] != "legacy_flag" {
		t.Errorf("mismatches = %v, want [legacy_flag]", mismatches)
	}
}
