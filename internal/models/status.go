package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SinistroStatus represents a configurable claim status
type SinistroStatus struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nome  string             `bson:"nome" json:"nome"`
	Cor   string             `bson:"cor,omitempty" json:"cor,omitempty"`
	Icone string             `bson:"icone,omitempty" json:"icone,omitempty"`
	Ordem int                `bson:"ordem" json:"ordem"`
	Ativo bool               `bson:"ativo" json:"ativo"`
}

// StatusListResponse is the payload of the status endpoint
type StatusListResponse struct {
	Status []SinistroStatus `json:"status"`
}

// DefaultStatuses returns the built-in status list used when the store is
// unreachable. It is returned as a fresh slice so callers can't mutate the
// canonical set.
func DefaultStatuses() []SinistroStatus {
	return []SinistroStatus{
		{Nome: "pendente", Cor: "#f59e0b", Icone: "clock", Ordem: 1, Ativo: true},
		{Nome: "aguardando_documentos", Cor: "#f97316", Icone: "file-warning", Ordem: 2, Ativo: true},
		{Nome: "em_analise", Cor: "#3b82f6", Icone: "search", Ordem: 3, Ativo: true},
		{Nome: "aprovado", Cor: "#22c55e", Icone: "check", Ordem: 4, Ativo: true},
		{Nome: "rejeitado", Cor: "#ef4444", Icone: "x", Ordem: 5, Ativo: true},
		{Nome: "concluido", Cor: "#16a34a", Icone: "check-circle", Ordem: 6, Ativo: true},
	}
}
