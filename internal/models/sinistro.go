package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimType identifies the kind of incident being reported
type ClaimType string

const (
	ClaimTypeCollision ClaimType = "colisao"
	ClaimTypeTheft     ClaimType = "furto"
	ClaimTypeRobbery   ClaimType = "roubo"
	ClaimTypeUnset     ClaimType = ""
)

// Valid reports whether the claim type is one of the selectable values
func (t ClaimType) Valid() bool {
	switch t {
	case ClaimTypeCollision, ClaimTypeTheft, ClaimTypeRobbery:
		return true
	}
	return false
}

// PhotoKind identifies what a captured photo documents
type PhotoKind string

const (
	PhotoKindCNH          PhotoKind = "cnh"
	PhotoKindCRLV         PhotoKind = "crlv"
	PhotoKindVehicle      PhotoKind = "foto_veiculo"
	PhotoKindPoliceReport PhotoKind = "boletim_ocorrencia"
)

// PhotoDocument represents one captured photo in a claim
type PhotoDocument struct {
	Kind        PhotoKind `bson:"tipo" json:"tipo"`
	Label       string    `bson:"rotulo,omitempty" json:"rotulo,omitempty"`
	FileName    string    `bson:"nome_arquivo" json:"nome_arquivo"`
	ContentType string    `bson:"content_type,omitempty" json:"content_type,omitempty"`
	StorageKey  string    `bson:"storage_key,omitempty" json:"storage_key,omitempty"`
	Timestamp   int64     `bson:"timestamp" json:"timestamp"`
}

// Sinistro represents a persisted insurance claim record
type Sinistro struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NumeroSinistro   string             `bson:"numero_sinistro" json:"numero_sinistro"`
	Tipo             ClaimType          `bson:"tipo" json:"tipo"`
	Status           string             `bson:"status" json:"status"`
	Nome             string             `bson:"nome,omitempty" json:"nome,omitempty"`
	CPF              string             `bson:"cpf,omitempty" json:"cpf,omitempty"`
	Placa            string             `bson:"placa,omitempty" json:"placa,omitempty"`
	Telefone         string             `bson:"telefone,omitempty" json:"telefone,omitempty"`
	DocumentosRoubados *bool            `bson:"documentos_roubados,omitempty" json:"documentos_roubados,omitempty"`
	Fotos            []PhotoDocument    `bson:"fotos,omitempty" json:"fotos,omitempty"`
	CreatedByManager bool               `bson:"created_by_manager" json:"created_by_manager"`
	CompletionToken  string             `bson:"completion_token,omitempty" json:"-"`
	TokenExpiresAt   *time.Time         `bson:"token_expires_at,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// FormDraft is the accumulating client-held state of one in-progress claim.
// It has no server identity until finalized.
type FormDraft struct {
	Tipo               ClaimType       `json:"tipo"`
	DocumentosRoubados *bool           `json:"documentos_roubados,omitempty"`
	Nome               string          `json:"nome,omitempty"`
	CPF                string          `json:"cpf,omitempty"`
	Placa              string          `json:"placa,omitempty"`
	Telefone           string          `json:"telefone,omitempty"`
	TerceiroNome       string          `json:"terceiro_nome,omitempty"`
	TerceiroPlaca      string          `json:"terceiro_placa,omitempty"`
	Fotos              []PhotoDocument `json:"fotos,omitempty"`
}

// PhotosOfKind returns the draft photos of a given kind
func (d *FormDraft) PhotosOfKind(kind PhotoKind) []PhotoDocument {
	var out []PhotoDocument
	for _, f := range d.Fotos {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// CompletionLinkResponse is returned when a manager issues a completion link
type CompletionLinkResponse struct {
	Success        bool      `json:"success"`
	Link           string    `json:"link"`
	Token          string    `json:"token"`
	ExpiresAt      time.Time `json:"expiresAt"`
	NumeroSinistro string    `json:"numeroSinistro"`
}

// CompletionValidateResponse is returned when a client opens a completion link
type CompletionValidateResponse struct {
	Success  bool      `json:"success"`
	Valid    bool      `json:"valid"`
	Sinistro *Sinistro `json:"sinistro,omitempty"`
}

// PaginatedSinistros represents a paginated dashboard listing
type PaginatedSinistros struct {
	Data       []Sinistro `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}
