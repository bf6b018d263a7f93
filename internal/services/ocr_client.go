package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/utils"
	"go.uber.org/zap"
)

// OCR document types accepted by the vendor
const (
	OCRTypeCNH  = "cnh"
	OCRTypeCRLV = "crlv"
)

// OCRRequest is the payload sent to the OCR vendor
type OCRRequest struct {
	Base64Image string `json:"base64Image"`
	Type        string `json:"type"`
}

// OCRResponse is the vendor's reply. The vendor always answers with
// transport success; logical failure is carried in the Success field.
type OCRResponse struct {
	Success       bool                   `json:"success"`
	ExtractedData map[string]interface{} `json:"extractedData,omitempty"`
	Message       string                 `json:"message,omitempty"`
}

// OCRClient handles communication with the document OCR vendor
type OCRClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *logging.SafeLogger
}

// NewOCRClient creates a new OCR client instance
func NewOCRClient(cfg *config.Config, logger *logging.SafeLogger) *OCRClient {
	return &OCRClient{
		endpoint: cfg.OCREndpoint,
		apiKey:   cfg.OCRAPIKey,
		client: &http.Client{
			Timeout: cfg.OCRTimeout,
		},
		logger: logger,
	}
}

// Global OCR client instance
var OCRClientInstance *OCRClient

// InitOCRClient initializes the global OCR client
func InitOCRClient() {
	OCRClientInstance = NewOCRClient(config.AppConfig, logging.Logger)
}

// Extract sends a document image to the vendor and returns its response.
// Errors are returned only for transport failures; a logical extraction
// failure comes back as Success=false.
func (c *OCRClient) Extract(ctx context.Context, base64Image, docType string) (*OCRResponse, error) {
	if docType != OCRTypeCNH && docType != OCRTypeCRLV {
		return nil, fmt.Errorf("unsupported document type: %s", docType)
	}
	if c.endpoint == "" {
		return nil, fmt.Errorf("OCR endpoint not configured")
	}

	ctx, span := utils.TraceExternalService(ctx, "ocr", "extract")
	defer span.End()

	body, err := json.Marshal(OCRRequest{Base64Image: base64Image, Type: docType})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"ocr.type": docType})
		return nil, fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OCR response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR vendor returned status %d", resp.StatusCode)
	}

	var ocrResp OCRResponse
	if err := json.Unmarshal(data, &ocrResp); err != nil {
		return nil, fmt.Errorf("failed to decode OCR response: %w", err)
	}

	if !ocrResp.Success {
		c.logger.Warn("OCR extraction failed",
			zap.String("type", docType),
			zap.String("message", ocrResp.Message))
	}

	return &ocrResp, nil
}
