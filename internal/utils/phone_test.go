package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		want    string
		wantErr bool
	}{
		{
			name:  "Bare national number assumes Brazil",
			phone: "21987654321",
			want:  "+5521987654321",
		},
		{
			name:  "Number with country code and no plus",
			phone: "5521987654321",
			want:  "+5521987654321",
		},
		{
			name:  "Already E.164",
			phone: "+5521987654321",
			want:  "+5521987654321",
		},
		{
			name:    "Empty input",
			phone:   "",
			wantErr: true,
		},
		{
			name:    "Garbage input",
			phone:   "not-a-phone",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.phone)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizePhone(%q) expected error, got %q", tt.phone, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q) unexpected error: %v", tt.phone, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}
