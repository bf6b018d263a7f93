package handlers

import (
	"net/http"

	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OCRExtractRequest is the document extraction request payload
type OCRExtractRequest struct {
	Base64Image string `json:"base64Image" binding:"required"`
	Type        string `json:"type" binding:"required"`
}

// ExtractDocument godoc
// @Summary Extrair dados de documento
// @Description Encaminha a imagem de um documento (CNH ou CRLV) ao serviço de OCR e repassa os dados extraídos. Falhas lógicas de extração retornam 200 com success=false.
// @Tags ocr
// @Accept json
// @Produce json
// @Param body body OCRExtractRequest true "Imagem em base64 e tipo do documento"
// @Success 200 {object} services.OCRResponse "Resultado da extração"
// @Failure 400 {object} ErrorResponse "Tipo de documento não suportado ou corpo inválido"
// @Failure 502 {object} ErrorResponse "Serviço de OCR indisponível"
// @Router /ocr/extract [post]
func ExtractDocument(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ExtractDocument")
	defer span.End()

	var req OCRExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "base64Image and type are required"})
		return
	}

	if req.Type != services.OCRTypeCNH && req.Type != services.OCRTypeCRLV {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported document type"})
		return
	}

	span.SetAttributes(attribute.String("ocr.type", req.Type))

	resp, err := services.OCRClientInstance.Extract(ctx, req.Base64Image, req.Type)
	if err != nil {
		observability.Logger().Error("OCR extraction request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Document extraction service unavailable"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
