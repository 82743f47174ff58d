package config

import "testing"

func TestGetString(t *testing.T) {
	cfg := map[string]string{"PORT": "9090", "EMPTY": ""}

	if got := GetString(cfg, "PORT", "8080"); got != "9090" {
		t.Errorf("GetString(PORT) = %q, want 9090", got)
	}
	if got := GetString(cfg, "MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetString(MISSING) = %q, want fallback", got)
	}
	// A key that is present but empty wins over the default.
	if got := GetString(cfg, "EMPTY", "fallback"); got != "" {
		t.Errorf("GetString(EMPTY) = %q, want empty string", got)
	}
	if got := GetString(nil, "PORT", "8080"); got != "8080" {
		t.Errorf("GetString(nil map) = %q, want 8080", got)
	}
}

func TestGetInt(t *testing.T) {
	cfg := map[string]string{"TIMEOUT": "30", "BAD": "thirty"}

	if got := GetInt(cfg, "TIMEOUT", 180); got != 30 {
		t.Errorf("GetInt(TIMEOUT) = %d, want 30", got)
	}
	if got := GetInt(cfg, "BAD", 180); got != 180 {
		t.Errorf("GetInt(BAD) = %d, want fallback 180", got)
	}
	if got := GetInt(cfg, "MISSING", 180); got != 180 {
		t.Errorf("GetInt(MISSING) = %d, want 180", got)
	}
}

func TestGetBool(t *testing.T) {
	cfg := map[string]string{"ON": "true", "OFF": "0", "BAD": "yep"}

	if !GetBool(cfg, "ON", false) {
		t.Error("GetBool(ON) = false, want true")
	}
	if GetBool(cfg, "OFF", true) {
		t.Error("GetBool(OFF) = true, want false")
	}
	if !GetBool(cfg, "BAD", true) {
		t.Error("GetBool(BAD) = false, want fallback true")
	}
}

func TestSplit(t *testing.T) {
	key, value := split("DATABASE_DSN=host=localhost port=5432")
	if key != "DATABASE_DSN" || value != "host=localhost port=5432" {
		t.Errorf("split() = %q, %q; want value to keep embedded equals signs", key, value)
	}

	key, value = split("NO_VALUE")
	if key != "NO_VALUE" || value != "" {
		t.Errorf("split(NO_VALUE) = %q, %q; want empty value", key, value)
	}
}
