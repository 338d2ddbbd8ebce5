package coerce

import (
	"testing"
)

func TestString_Basic(t *testing.T) {
	got, err := String("  hello  ", "name", StringOptions{})
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if *got != "hello" {
		t.Errorf("trim: got %q, want %q", *got, "hello")
	}
}

func TestString_NoTrim(t *testing.T) {
	got, err := String("  hello  ", "name", StringOptions{NoTrim: true})
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if *got != "  hello  " {
		t.Errorf("NoTrim: got %q", *got)
	}
}

func TestString_StringifiesScalars(t *testing.T) {
	got, err := String(42, "code", StringOptions{})
	if err != nil {
		t.Fatalf("String(42): %v", err)
	}
	if *got != "42" {
		t.Errorf("stringify: got %q, want %q", *got, "42")
	}
}

func TestString_EmptyVsAbsent(t *testing.T) {
	_, err := String(nil, "name", StringOptions{})
	if err == nil || err.Error() != "name is required" {
		t.Errorf("absent: got %v, want %q", err, "name is required")
	}

	_, err = String("   ", "name", StringOptions{})
	if err == nil || err.Error() != "name cannot be empty" {
		t.Errorf("whitespace: got %v, want %q", err, "name cannot be empty")
	}

	for _, input := range []any{nil, "", "   "} {
		got, err := String(input, "name", StringOptions{AllowNull: true})
		if err != nil || got != nil {
			t.Errorf("AllowNull with %v: got %v, %v, want nil, nil", input, got, err)
		}
	}
}

func TestString_LengthBounds(t *testing.T) {
	_, err := String("ab", "name", StringOptions{MinLength: 3})
	if err == nil || err.Error() != "name must be at least 3 characters" {
		t.Errorf("too short: got %v", err)
	}

	_, err = String("abcdef", "name", StringOptions{MaxLength: 5})
	if err == nil || err.Error() != "name must be at most 5 characters" {
		t.Errorf("too long: got %v", err)
	}

	if got, err := String("abc", "name", StringOptions{MinLength: 3, MaxLength: 3}); err != nil || *got != "abc" {
		t.Errorf("exact bound: got %v, %v", got, err)
	}
}

func TestBoolean(t *testing.T) {
	tests := []struct {
		name  string
		input any
		def   bool
		want  bool
	}{
		{"bool true", true, false, true},
		{"bool false", false, true, false},
		{"string true", "true", false, true},
		{"string false", "false", true, false},
		{"one", 1, false, true},
		{"zero", 0, true, false},
		{"float nonzero", 1.0, false, true},
		{"other string is truthy", "yes", false, true},
		{"empty string uses default", "", true, true},
		{"nil uses default", nil, true, true},
		{"array first element", []string{"false"}, true, false},
		{"empty array uses default", []string{}, true, true},
		{"object uses default", map[string]any{}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Boolean(tt.input, "is_active", tt.def); got != tt.want {
				t.Errorf("Boolean(%v, def=%v) = %v, want %v", tt.input, tt.def, got, tt.want)
			}
		})
	}
}
