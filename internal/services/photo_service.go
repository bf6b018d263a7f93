package services

import (
	"context"
	"fmt"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Presigner is the slice of the S3 presign client the photo service uses
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// PresignedUpload describes where and how a photo must be uploaded
type PresignedUpload struct {
	URL       string            `json:"url"`
	Key       string            `json:"key"`
	FileName  string            `json:"file_name"`
	Headers   map[string]string `json:"headers"`
	ExpiresIn int64             `json:"expires_in_seconds"`
}

// PhotoService hands out presigned PUT URLs for claim photos
type PhotoService struct {
	presigner Presigner
	bucket    string
	ttl       time.Duration
	logger    *logging.SafeLogger
}

// NewPhotoService creates a photo service over a presigner
func NewPhotoService(presigner Presigner, bucket string, ttl time.Duration, logger *logging.SafeLogger) *PhotoService {
	return &PhotoService{
		presigner: presigner,
		bucket:    bucket,
		ttl:       ttl,
		logger:    logger,
	}
}

// Global photo service instance
var PhotoServiceInstance *PhotoService

// InitPhotoService initializes the global photo service. Photo upload is
// optional; without a configured bucket the endpoints report unavailable.
func InitPhotoService(ctx context.Context) {
	if config.AppConfig.PhotoBucket == "" {
		logging.Logger.Info("photo bucket not configured, photo upload disabled")
		return
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logging.Logger.Error("failed to load AWS config, photo upload disabled", zap.Error(err))
		return
	}

	client := s3.NewFromConfig(awsCfg)
	PhotoServiceInstance = NewPhotoService(
		s3.NewPresignClient(client),
		config.AppConfig.PhotoBucket,
		config.AppConfig.PhotoPresignTTL,
		logging.Logger,
	)

	logging.Logger.Info("photo service initialized",
		zap.String("bucket", config.AppConfig.PhotoBucket))
}

// BuildPhotoKey constructs the object key for a claim photo
func BuildPhotoKey(sinistroID, fileName string) string {
	return fmt.Sprintf("sinistros/%s/%s", sinistroID, fileName)
}

// PresignPhotoUpload returns a presigned PUT for one draft photo. The object
// key embeds the canonical file name derived from kind and label.
func (s *PhotoService) PresignPhotoUpload(ctx context.Context, sinistroID string, kind models.PhotoKind, label, contentType, extension string) (*PresignedUpload, error) {
	timestamp := time.Now().UnixMilli()
	fileName := utils.ToCanonicalFileName(kind, label, timestamp, extension)
	key := BuildPhotoKey(sinistroID, fileName)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"sinistro_id": sinistroID,
			"tipo":        string(kind),
		},
	}

	req, err := s.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) { o.Expires = s.ttl })
	if err != nil {
		return nil, fmt.Errorf("failed to presign photo upload: %w", err)
	}

	s.logger.Debug("photo upload presigned",
		zap.String("sinistro_id", sinistroID),
		zap.String("key", key))

	return &PresignedUpload{
		URL:      req.URL,
		Key:      key,
		FileName: fileName,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
		ExpiresIn: int64(s.ttl.Seconds()),
	}, nil
}
