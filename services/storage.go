package services

import (
	"context"
	"fmt"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/talentbridge/command-center-backend/config"
	"github.com/talentbridge/command-center-backend/errs"
)

// Document kinds stored per student.
const (
	DocumentKindResume     = "resume"
	DocumentKindTranscript = "transcript"
)

const presignExpiry = 15 * time.Minute

// presignAPI is the slice of the S3 presign client the store needs.
type presignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// DocumentStore hands out short-lived presigned URLs for student documents.
// Objects live at students/{id}/{kind}; the backend never proxies file
// bytes.
type DocumentStore struct {
	bucket  string
	presign presignAPI
}

// NewDocumentStore builds a DocumentStore from config. A store without a
// bucket is still returned; presign calls fail with a storage error.
func NewDocumentStore(ctx context.Context, cfg map[string]string) (*DocumentStore, error) {
	bucket := config.GetString(cfg, "DOCUMENTS_BUCKET", "")
	if bucket == "" {
		return &DocumentStore{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for document store: %w", err)
	}
	return &DocumentStore{
		bucket:  bucket,
		presign: s3.NewPresignClient(s3.NewFromConfig(awsCfg)),
	}, nil
}

// Enabled reports whether a bucket was configured.
func (d *DocumentStore) Enabled() bool {
	return d.bucket != "" && d.presign != nil
}

// ValidDocumentKind reports whether kind is one of the stored document
// kinds.
func ValidDocumentKind(kind string) bool {
	return kind == DocumentKindResume || kind == DocumentKindTranscript
}

// UploadURL returns a presigned PUT URL for one student document.
func (d *DocumentStore) UploadURL(ctx context.Context, studentID uuid.UUID, kind, contentType string) (string, error) {
	if !d.Enabled() {
		return "", errs.NewStorageError("presign upload", fmt.Errorf("DOCUMENTS_BUCKET is not configured"))
	}

	key := documentKey(studentID, kind)
	req, err := d.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &d.bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", errs.NewStorageError("presign upload", err)
	}
	return req.URL, nil
}

// DownloadURL returns a presigned GET URL for one student document.
func (d *DocumentStore) DownloadURL(ctx context.Context, studentID uuid.UUID, kind string) (string, error) {
	if !d.Enabled() {
		return "", errs.NewStorageError("presign download", fmt.Errorf("DOCUMENTS_BUCKET is not configured"))
	}

	key := documentKey(studentID, kind)
	req, err := d.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &d.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", errs.NewStorageError("presign download", err)
	}
	return req.URL, nil
}

func documentKey(studentID uuid.UUID, kind string) string {
	return fmt.Sprintf("students/%s/%s", studentID, kind)
}
