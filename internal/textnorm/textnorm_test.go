package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ran!", "ran"},
		{"  to   be  ", "to be"},
		{"ice-cream", "ice cream"},
		{"Don't", "don t"},
		{"ПРИВЕТ, мир", "привет мир"},
		{"Ёлка", "ёлка"},
		{"B2B...", "b2b"},
		{"", ""},
		{"!!!", ""},
		{"naïve", "na ve"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCompact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ice cream", "icecream"},
		{"ice-cream", "icecream"},
		{" Look  After ", "lookafter"},
	}
	for _, tt := range tests {
		if got := NormalizeCompact(tt.in); got != tt.want {
			t.Errorf("NormalizeCompact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitVariants(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"go/goes", []string{"go", "goes"}},
		{"Was / Were", []string{"was", "were"}},
		{"learnt/learned/", []string{"learnt", "learned"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := SplitVariants(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitVariants(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCheckVariants(t *testing.T) {
	tests := []struct {
		answer   string
		expected string
		want     bool
	}{
		{"run", "run/runs", true},
		{"Ran!", "ran", true},
		{"walk", "run", false},
		{"runs", "run/runs", true},
		{"", "run", false},
		{"run", "", false},
		{"  Идти ", "идти/ходить", true},
	}
	for _, tt := range tests {
		if got := CheckVariants(tt.answer, tt.expected); got != tt.want {
			t.Errorf("CheckVariants(%q, %q) = %v, want %v", tt.answer, tt.expected, got, tt.want)
		}
	}
}

func TestFirstVariant(t *testing.T) {
	if got := FirstVariant(" Was / Were"); got != "Was" {
		t.Errorf("FirstVariant = %q, want %q", got, "Was")
	}
	if got := FirstVariant("gone"); got != "gone" {
		t.Errorf("FirstVariant = %q, want %q", got, "gone")
	}
}
