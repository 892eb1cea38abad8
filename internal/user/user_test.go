package user

import (
	"testing"
)

func TestDefault_PrefersEnv(t *testing.T) {
	t.Setenv("USER", "  ada ")
	if got := Default(); got != "ada" {
		t.Errorf("Default() = %q, want ada", got)
	}
}

func TestDefault_FallsBackToAccount(t *testing.T) {
	t.Setenv("USER", "")
	// The OS account is environment specific; it only has to be normalized
	got := Default()
	if got != Normalize(got) {
		t.Errorf("Default() = %q is not normalized", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ada", "ada"},
		{"  ada\n", "ada"},
		{`CORP\ada`, "ada"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
