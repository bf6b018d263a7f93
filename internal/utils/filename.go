package utils

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/autoprotege/app-sinistro/internal/models"
)

// labelToSlug maps the vehicle-photo labels shown in the intake wizard to
// their canonical file-name slugs.
var labelToSlug = map[string]string{
	"Frente do Seu Veículo":           "frente_veiculo",
	"Traseira do Seu Veículo":         "traseira_veiculo",
	"Lateral Esquerda do Seu Veículo": "lateral_esquerda_veiculo",
	"Lateral Direita do Seu Veículo":  "lateral_direita_veiculo",
	"Frente do Outro Veículo":         "frente_outro_veiculo",
	"Traseira do Outro Veículo":       "traseira_outro_veiculo",
	"Lateral do Outro Veículo":        "lateral_outro_veiculo",
	"Placa do Outro Veículo":          "placa_outro_veiculo",
	"Visão Geral da Cena":             "visao_geral_cena",
	"Ponto de Referência":             "ponto_referencia",
	"Dano Principal":                  "dano_principal",
	"Detalhe do Dano":                 "detalhe_dano",
	"Foto do Reparo Simples":          "reparo_dano",
	"Dano para Reparo Simples":        "reparo_dano",
	"Chassi do Veículo":               "chassi_reparo",
	"Chassi para Reparo":              "chassi_reparo",
}

// slugToLabel is the reverse table used when rebuilding display labels.
// reparo_dano and chassi_reparo are reused by more than one label, so the
// reverse transform is best-effort, not a true inverse.
var slugToLabel = map[string]string{
	"frente_veiculo":           "Frente do Seu Veículo",
	"traseira_veiculo":         "Traseira do Seu Veículo",
	"lateral_esquerda_veiculo": "Lateral Esquerda do Seu Veículo",
	"lateral_direita_veiculo":  "Lateral Direita do Seu Veículo",
	"frente_outro_veiculo":     "Frente do Outro Veículo",
	"traseira_outro_veiculo":   "Traseira do Outro Veículo",
	"lateral_outro_veiculo":    "Lateral do Outro Veículo",
	"placa_outro_veiculo":      "Placa do Outro Veículo",
	"visao_geral_cena":         "Visão Geral da Cena",
	"ponto_referencia":         "Ponto de Referência",
	"dano_principal":           "Dano Principal",
	"detalhe_dano":             "Detalhe do Dano",
	"reparo_dano":              "Foto do Reparo Simples",
	"chassi_reparo":            "Chassi do Veículo",
	"boletim":                  "Boletim de Ocorrência",
	"cnh":                      "CNH",
	"crlv":                     "CRLV",
}

// ToCanonicalFileName derives the storage file name for a captured photo
func ToCanonicalFileName(kind models.PhotoKind, label string, timestamp int64, extension string) string {
	switch kind {
	case models.PhotoKindCNH, models.PhotoKindCRLV:
		return fmt.Sprintf("%s_%d.%s", kind, timestamp, extension)
	case models.PhotoKindPoliceReport:
		return fmt.Sprintf("boletim_%d.%s", timestamp, extension)
	case models.PhotoKindVehicle:
		if slug, ok := labelToSlug[label]; ok {
			return fmt.Sprintf("%s_%d.%s", slug, timestamp, extension)
		}
	}
	return fmt.Sprintf("%s_%d.%s", kind, timestamp, extension)
}

// FromCanonicalFileName rebuilds a display label from a stored file name.
// This is a best-effort display transform and is not guaranteed to invert
// every forward mapping.
func FromCanonicalFileName(fileName string) string {
	base := path.Base(fileName)
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[:i]
	}

	tokens := strings.Split(base, "_")
	if len(tokens) > 1 && isAllDigits(tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}
	slug := strings.Join(tokens, "_")

	if label, ok := slugToLabel[slug]; ok {
		return label
	}

	// Unknown slug: title-case each token
	for i, tok := range tokens {
		tokens[i] = titleToken(tok)
	}
	return strings.Join(tokens, " ")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func titleToken(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
