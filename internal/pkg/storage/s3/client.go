package s3aws

import (
	"bytes"
	"context"
	"efood-checkout/internal/pkg/logger"
	"efood-checkout/internal/pkg/redis"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const presignTTL = 24 * time.Hour

type S3Config struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	// Endpoint targets an S3 compatible store; path style addressing is used
	// whenever it is set.
	Endpoint string
}

type S3Client struct {
	Client     *s3.S3
	BucketName string
	redis      redis.IRedis
}

type Is3 interface {
	GetBucketName() string
	UploadFile(ctx context.Context, key string, fileBytes []byte, contentType string) error
	GetPresignedURL(ctx context.Context, key string) (string, error)
}

func newSession(cfg S3Config) (*session.Session, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	return session.NewSession(awsCfg)
}

// NewS3Client connects to bucketName, creating it when missing. rds caches
// presigned URLs and may be nil.
func NewS3Client(ctx context.Context, cfg S3Config, bucketName string, rds redis.IRedis) (*S3Client, error) {
	if bucketName == "" {
		return nil, errors.New("s3 bucket name is empty")
	}

	sess, err := newSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	s3Client := &S3Client{
		Client:     s3.New(sess),
		BucketName: bucketName,
		redis:      rds,
	}

	exists, err := s3Client.bucketExists(ctx)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := s3Client.createBucket(ctx); err != nil {
			return nil, err
		}
	}

	return s3Client, nil
}

func (s *S3Client) bucketExists(ctx context.Context) (bool, error) {
	_, err := s.Client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	if err == nil {
		return true, nil
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket, "NotFound":
			return false, nil
		}
	}
	return false, fmt.Errorf("failed to check bucket %s: %w", s.BucketName, err)
}

func (s *S3Client) createBucket(ctx context.Context) error {
	logger.Info.Printf("Creating bucket: %s", s.BucketName)
	_, err := s.Client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.BucketName, err)
	}
	return nil
}

func (s *S3Client) GetBucketName() string {
	return s.BucketName
}

func (s *S3Client) UploadFile(ctx context.Context, key string, fileBytes []byte, contentType string) error {
	if contentType == "" {
		contentType = contentTypeFromKey(key)
	}

	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return nil
}

func (s *S3Client) GetPresignedURL(ctx context.Context, key string) (string, error) {
	cacheKey := fmt.Sprintf("s3:%s:%s", s.BucketName, key)
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var url string
			if json.Unmarshal([]byte(cached), &url) == nil && strings.HasPrefix(url, "http") {
				return url, nil
			}
		}
	}

	req, _ := s.Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket:                     aws.String(s.BucketName),
		Key:                        aws.String(key),
		ResponseContentType:        aws.String(contentTypeFromKey(key)),
		ResponseContentDisposition: aws.String("inline"),
	})

	urlStr, err := req.Presign(presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	if s.redis != nil {
		// expire the cache before the signature does
		if err := s.redis.Set(ctx, cacheKey, urlStr, presignTTL-time.Hour); err != nil {
			logger.Warning.Printf("failed to cache presigned URL for %s: %v", key, err)
		}
	}

	return urlStr, nil
}

func contentTypeFromKey(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	}
	return "application/octet-stream"
}
