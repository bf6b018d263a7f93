package handlers

import (
	"net/http"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PresignPhotoRequest asks for a presigned upload slot for one claim photo
type PresignPhotoRequest struct {
	SinistroID  string           `json:"sinistroId" binding:"required"`
	Tipo        models.PhotoKind `json:"tipo" binding:"required"`
	Rotulo      string           `json:"rotulo"`
	ContentType string           `json:"contentType" binding:"required"`
	Extension   string           `json:"extension" binding:"required"`
}

func validPhotoKind(kind models.PhotoKind) bool {
	switch kind {
	case models.PhotoKindCNH, models.PhotoKindCRLV, models.PhotoKindVehicle, models.PhotoKindPoliceReport:
		return true
	}
	return false
}

// PresignPhotoUpload godoc
// @Summary Gerar URL de upload de foto
// @Description Gera uma URL pré-assinada de PUT para o upload direto de uma foto do sinistro. O nome canônico do arquivo é derivado do tipo e do rótulo da foto.
// @Tags fotos
// @Accept json
// @Produce json
// @Param body body PresignPhotoRequest true "Dados da foto"
// @Success 200 {object} services.PresignedUpload "URL pré-assinada"
// @Failure 400 {object} ErrorResponse "Tipo de foto inválido ou corpo inválido"
// @Failure 503 {object} ErrorResponse "Upload de fotos não configurado"
// @Router /fotos/presign [post]
func PresignPhotoUpload(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "PresignPhotoUpload")
	defer span.End()

	if services.PhotoServiceInstance == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Photo upload is not configured"})
		return
	}

	var req PresignPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !validPhotoKind(req.Tipo) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid photo kind"})
		return
	}

	span.SetAttributes(
		attribute.String("sinistro_id", req.SinistroID),
		attribute.String("photo_kind", string(req.Tipo)),
	)

	upload, err := services.PhotoServiceInstance.PresignPhotoUpload(ctx, req.SinistroID, req.Tipo, req.Rotulo, req.ContentType, req.Extension)
	if err != nil {
		observability.Logger().Error("failed to presign photo upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to presign photo upload"})
		return
	}

	c.JSON(http.StatusOK, upload)
}
