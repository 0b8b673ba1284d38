package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"sellinginfinity/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const (
	pdfContentType = "application/pdf"
	presignExpiry  = 60 * time.Second
)

var ErrPDFNotFound = errors.New("pdf not found for product")

// ObjectClient is the subset of *minio.Client used for product PDFs.
type ObjectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type PDFURL struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn,omitempty"` // seconds, 0 for public links
}

type PDFStorage struct {
	client    ObjectClient
	bucket    string
	public    bool
	publicURL string
	log       *zap.Logger
}

// NewMinIO connects to the configured MinIO / S3 endpoint.
func NewMinIO(cfg config.StorageConfig, log *zap.Logger) (*PDFStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return NewPDFStorage(client, cfg.Bucket, cfg.PublicBucket, publicURL, log), nil
}

func NewPDFStorage(client ObjectClient, bucket string, public bool, publicURL string, log *zap.Logger) *PDFStorage {
	return &PDFStorage{
		client:    client,
		bucket:    bucket,
		public:    public,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log,
	}
}

func ObjectKey(productID string) string {
	return "products/" + productID + ".pdf"
}

// Upload stores the PDF for productID, creating the bucket on first use.
func (s *PDFStorage) Upload(ctx context.Context, productID string, r io.Reader, size int64) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	key := ObjectKey(productID)
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  pdfContentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	s.log.Info("product pdf uploaded", zap.String("product_id", productID), zap.String("key", key), zap.Int64("size", size))
	return key, nil
}

// URL returns a link to the product PDF, checking the current key layout
// before the legacy flat one.
func (s *PDFStorage) URL(ctx context.Context, productID string) (*PDFURL, error) {
	for _, key := range []string{ObjectKey(productID), productID + ".pdf"} {
		ok, err := s.exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if s.public {
			return &PDFURL{URL: s.publicURL + "/" + key, Key: key}, nil
		}
		u, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignExpiry, url.Values{})
		if err != nil {
			return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
		}
		return &PDFURL{URL: u.String(), Key: key, ExpiresIn: int(presignExpiry / time.Second)}, nil
	}
	return nil, ErrPDFNotFound
}

func (s *PDFStorage) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		switch minio.ToErrorResponse(err).Code {
		case "NoSuchKey", "NoSuchBucket":
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return true, nil
}

func (s *PDFStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	s.log.Info("bucket created", zap.String("bucket", s.bucket))
	return nil
}
