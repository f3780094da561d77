package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/ideaboard/internal/common"
	sc "github.com/dmitrijs2005/ideaboard/internal/server/config"
	"github.com/dmitrijs2005/ideaboard/internal/server/models"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrImagesDisabled is returned when no bucket is configured.
var ErrImagesDisabled = errors.New("image uploads are not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

type ImageService struct {
	config *sc.Config
	now    func() time.Time
}

func NewImageService(config *sc.Config) *ImageService {
	return &ImageService{config: config, now: time.Now}
}

// storageKey places objects under a date prefix: ideas/2026/10/19/<uuid>.png
func (s *ImageService) storageKey(contentType string) string {
	d := s.now().UTC()
	ext := ""
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("ideas/%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.config.S3Region)}
	if s.config.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// PresignUpload issues a presigned PUT for one image of contentType.
func (s *ImageService) PresignUpload(ctx context.Context, contentType string) (*models.ImageUpload, error) {
	if !s.config.S3Enabled() {
		return nil, ErrImagesDisabled
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return nil, fmt.Errorf("%w: contentType must be an image type", common.ErrValidation)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := s.storageKey(mediaType)
	expires := s.config.S3PresignExpires
	if expires <= 0 {
		expires = 15 * time.Minute
	}

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(mediaType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return nil, err
	}

	return &models.ImageUpload{
		UploadURL: req.URL,
		ImageURL:  s.objectURL(key),
		Key:       key,
		ExpiresAt: s.now().Add(expires),
	}, nil
}

// objectURL is where an uploaded object is served from: the public base URL
// when configured, else path-style on the S3 endpoint.
func (s *ImageService) objectURL(key string) string {
	if base := strings.TrimRight(s.config.S3PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}

	base := strings.TrimRight(s.config.S3BaseEndpoint, "/")
	if base == "" {
		base = fmt.Sprintf("https://s3.%s.amazonaws.com", s.config.S3Region)
	}
	u, err := url.JoinPath(base, s.config.S3Bucket, key)
	if err != nil {
		return base + "/" + s.config.S3Bucket + "/" + key
	}
	return u
}
