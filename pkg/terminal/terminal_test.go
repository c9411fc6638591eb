package terminal

import (
	"errors"
	"testing"
)

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback int
		want     int
	}{
		{"unset", "", 80, 80},
		{"valid", "120", 80, 120},
		{"not a number", "wide", 80, 80},
		{"zero", "0", 80, 80},
		{"negative", "-5", 80, 80},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PROCPULSE_TEST_COLS", tc.value)
			if got := envInt("PROCPULSE_TEST_COLS", tc.fallback); got != tc.want {
				t.Errorf("envInt(%q) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestGetSizeFromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "43")
	s := getSizeFromEnv()
	if s.Cols != 132 || s.Rows != 43 {
		t.Errorf("getSizeFromEnv() = %+v, want 132x43", s)
	}
}

func TestGetSizeFromEnvDefaults(t *testing.T) {
	t.Setenv("COLUMNS", "")
	t.Setenv("LINES", "")
	s := getSizeFromEnv()
	if s.Cols != 80 || s.Rows != 24 {
		t.Errorf("getSizeFromEnv() = %+v, want 80x24 defaults", s)
	}
}

func TestGuardNilRestore(t *testing.T) {
	var g *Guard
	g.Restore() // must not panic
}

func TestGuardProtectPassesError(t *testing.T) {
	g := &Guard{}
	want := errors.New("run failed")
	if err := g.Protect(func() error { return want }); !errors.Is(err, want) {
		t.Errorf("Protect returned %v, want %v", err, want)
	}
}

func TestGuardProtectRepanics(t *testing.T) {
	g := &Guard{}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to propagate through Protect")
		}
		if r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	_ = g.Protect(func() error { panic("boom") })
}
