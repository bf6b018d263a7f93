package observability

import "testing"

func TestMaskCPF(t *testing.T) {
	tests := []struct {
		name string
		cpf  string
		want string
	}{
		{
			name: "Bare digits",
			cpf:  "11144477735",
			want: "111.***.777-**",
		},
		{
			name: "Formatted CPF as persisted",
			cpf:  "111.444.777-35",
			want: "111.***.777-**",
		},
		{
			name: "Too short",
			cpf:  "1114447",
			want: "***.***.***-**",
		},
		{
			name: "Empty",
			cpf:  "",
			want: "***.***.***-**",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskCPF(tt.cpf); got != tt.want {
				t.Errorf("MaskCPF(%q) = %q, want %q", tt.cpf, got, tt.want)
			}
		})
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{
			name:  "Long token keeps prefix",
			token: "3f8a1b2c-9d4e-4f5a-8b6c-7d8e9f0a1b2c",
			want:  "3f8a1b2c…",
		},
		{
			name:  "Short token fully masked",
			token: "abc",
			want:  "********",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskToken(tt.token); got != tt.want {
				t.Errorf("MaskToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}
