package utils

import (
	"testing"

	"github.com/autoprotege/app-sinistro/internal/models"
)

func TestToCanonicalFileName(t *testing.T) {
	tests := []struct {
		name      string
		kind      models.PhotoKind
		label     string
		timestamp int64
		extension string
		want      string
	}{
		{
			name:      "Vehicle photo with known label",
			kind:      models.PhotoKindVehicle,
			label:     "Frente do Seu Veículo",
			timestamp: 1700000000000,
			extension: "jpg",
			want:      "frente_veiculo_1700000000000.jpg",
		},
		{
			name:      "Third-party vehicle photo",
			kind:      models.PhotoKindVehicle,
			label:     "Placa do Outro Veículo",
			timestamp: 1700000000001,
			extension: "jpg",
			want:      "placa_outro_veiculo_1700000000001.jpg",
		},
		{
			name:      "Vehicle photo with unknown label falls back to kind",
			kind:      models.PhotoKindVehicle,
			label:     "Alguma Outra Foto",
			timestamp: 1700000000002,
			extension: "png",
			want:      "foto_veiculo_1700000000002.png",
		},
		{
			name:      "CNH ignores label",
			kind:      models.PhotoKindCNH,
			label:     "Frente do Seu Veículo",
			timestamp: 1700000000003,
			extension: "jpg",
			want:      "cnh_1700000000003.jpg",
		},
		{
			name:      "CRLV",
			kind:      models.PhotoKindCRLV,
			label:     "",
			timestamp: 1700000000004,
			extension: "jpg",
			want:      "crlv_1700000000004.jpg",
		},
		{
			name:      "Police report uses boletim prefix",
			kind:      models.PhotoKindPoliceReport,
			label:     "",
			timestamp: 1700000000005,
			extension: "pdf",
			want:      "boletim_1700000000005.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToCanonicalFileName(tt.kind, tt.label, tt.timestamp, tt.extension)
			if got != tt.want {
				t.Errorf("ToCanonicalFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromCanonicalFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{
			name:     "Known slug with timestamp",
			fileName: "frente_veiculo_1700000000000.jpg",
			want:     "Frente do Seu Veículo",
		},
		{
			name:     "Known slug from a full path",
			fileName: "sinistros/abc123/traseira_veiculo_1700000000000.jpg",
			want:     "Traseira do Seu Veículo",
		},
		{
			name:     "Police report",
			fileName: "boletim_1700000000005.pdf",
			want:     "Boletim de Ocorrência",
		},
		{
			name:     "Document kinds",
			fileName: "cnh_1700000000003.jpg",
			want:     "CNH",
		},
		{
			name:     "Unknown slug is title-cased",
			fileName: "foto_avulsa_1700000000000.jpg",
			want:     "Foto Avulsa",
		},
		{
			name:     "No timestamp token",
			fileName: "dano_principal.jpg",
			want:     "Dano Principal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromCanonicalFileName(tt.fileName); got != tt.want {
				t.Errorf("FromCanonicalFileName(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}

// Labels sharing a slug cannot all round-trip; the reverse transform settles
// on one representative label per slug.
func TestFromCanonicalFileNameSharedSlug(t *testing.T) {
	forward := ToCanonicalFileName(models.PhotoKindVehicle, "Dano para Reparo Simples", 1700000000000, "jpg")
	if forward != "reparo_dano_1700000000000.jpg" {
		t.Fatalf("unexpected forward mapping: %q", forward)
	}
	if got := FromCanonicalFileName(forward); got != "Foto do Reparo Simples" {
		t.Errorf("FromCanonicalFileName(%q) = %q, want representative label %q", forward, got, "Foto do Reparo Simples")
	}
}
