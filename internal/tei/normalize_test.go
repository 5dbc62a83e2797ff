package tei

import "testing"

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Title", want: "Title"},
		{in: "21 Test", want: "Test"},
		{in: "1. introduction", want: "Introduction"},
		{in: "  • KEYWORDS  ", want: "Keywords"},
		{in: "123", want: ""},
		{in: "", want: ""},
		{in: "über alles", want: "Über alles"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanTitle(tt.in); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "INTRODUCTION", want: "Introduction"},
		{in: "related work", want: "Related work"},
		{in: "x", want: "X"},
		{in: "", want: ""},
		{in: "3D MODELS", want: "3d models"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Capitalize(tt.in); got != tt.want {
				t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCaseChecks(t *testing.T) {
	tests := []struct {
		in    string
		upper bool
		lower bool
	}{
		{in: "ABC 1", upper: true},
		{in: "abc 1", lower: true},
		{in: "Abc"},
		{in: "123"},
		{in: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := isUpper(tt.in); got != tt.upper {
				t.Errorf("isUpper(%q) = %v, want %v", tt.in, got, tt.upper)
			}
			if got := isLower(tt.in); got != tt.lower {
				t.Errorf("isLower(%q) = %v, want %v", tt.in, got, tt.lower)
			}
		})
	}
}
