package utils

import "testing"

func TestValidatePlate(t *testing.T) {
	tests := []struct {
		name  string
		plate string
		want  bool
	}{
		{
			name:  "Legacy format",
			plate: "ABC1234",
			want:  true,
		},
		{
			name:  "Legacy format with hyphen",
			plate: "ABC-1234",
			want:  true,
		},
		{
			name:  "Legacy format lowercase",
			plate: "abc1234",
			want:  true,
		},
		{
			name:  "Mercosul format",
			plate: "ABC1D23",
			want:  true,
		},
		{
			name:  "Mercosul format lowercase",
			plate: "abc1d23",
			want:  true,
		},
		{
			name:  "Too few characters",
			plate: "AB1234",
			want:  false,
		},
		{
			name:  "Too many characters",
			plate: "ABCD1234",
			want:  false,
		},
		{
			name:  "Letter in wrong position",
			plate: "AB12C34",
			want:  false,
		},
		{
			name:  "Empty string",
			plate: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePlate(tt.plate); got != tt.want {
				t.Errorf("ValidatePlate(%q) = %v, want %v", tt.plate, got, tt.want)
			}
		})
	}
}

func TestFormatPlate(t *testing.T) {
	tests := []struct {
		name  string
		plate string
		want  string
	}{
		{
			name:  "Legacy plate gains hyphen",
			plate: "abc1234",
			want:  "ABC-1234",
		},
		{
			name:  "Mercosul plate gains hyphen",
			plate: "abc1d23",
			want:  "ABC-1D23",
		},
		{
			name:  "Already hyphenated is normalized",
			plate: "ABC-1234",
			want:  "ABC-1234",
		},
		{
			name:  "Partial input is cleaned only",
			plate: "ab c1",
			want:  "ABC1",
		},
		{
			name:  "Oversized input is truncated",
			plate: "abc1234567",
			want:  "ABC12345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPlate(tt.plate); got != tt.want {
				t.Errorf("FormatPlate(%q) = %q, want %q", tt.plate, got, tt.want)
			}
		})
	}
}
