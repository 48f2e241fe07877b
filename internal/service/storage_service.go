package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/greenleaf/leaf_api/internal/config"
)

// StorageService uploads and deletes image objects in S3 buckets using
// AWS Signature V4 over plain HTTP requests.
type StorageService struct {
	region          string
	accessKeyID     string
	secretAccessKey string
}

// NewStorageService creates a new storage service.
func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage config is nil")
	}
	return &StorageService{
		region:          cfg.Region,
		accessKeyID:     cfg.AccessKeyID,
		secretAccessKey: cfg.SecretAccessKey,
	}, nil
}

// Bucket binds the service to one bucket for upload/delete operations.
func (s *StorageService) Bucket(name string) *Bucket {
	return &Bucket{svc: s, name: name}
}

// Bucket is a handle on one S3 bucket.
type Bucket struct {
	svc  *StorageService
	name string
}

// Upload stores an object and returns its public URL.
func (b *Bucket) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	svc := b.svc

	// Without credentials (local development) skip the request and hand back
	// the URL the object would have.
	if svc.accessKeyID == "" || svc.secretAccessKey == "" {
		log.Warn().Str("bucket", b.name).Str("key", key).Msg("storage credentials not configured - skipping upload")
		return b.URL(key), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.URL(key), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Length", fmt.Sprintf("%d", len(data)))

	if err := svc.do(req, data, b.name, key); err != nil {
		return "", err
	}

	log.Info().Str("bucket", b.name).Str("key", key).Msg("object uploaded")
	return b.URL(key), nil
}

// Delete removes an object. Used as the compensating action when a row
// write fails after its image upload succeeded.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	svc := b.svc
	if svc.accessKeyID == "" || svc.secretAccessKey == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.URL(key), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if err := svc.do(req, nil, b.name, key); err != nil {
		return err
	}

	log.Info().Str("bucket", b.name).Str("key", key).Msg("object deleted")
	return nil
}

// URL returns the public URL for an object.
func (b *Bucket) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.name, b.svc.region, key)
}

// do signs and executes a storage request, treating any non-2xx status as
// an error.
func (s *StorageService) do(req *http.Request, payload []byte, bucket, key string) error {
	now := time.Now().UTC()
	amzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")
	payloadHash := sha256Hex(payload)

	req.Header.Set("Host", fmt.Sprintf("%s.s3.%s.amazonaws.com", bucket, s.region))
	req.Header.Set("X-Amz-Date", amzDate)
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)
	req.Header.Set("Authorization", s.signRequest(req, payloadHash, amzDate, dateStamp))

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("storage request failed")
		return fmt.Errorf("storage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Str("bucket", bucket).
			Str("key", key).
			Int("status", resp.StatusCode).
			Str("response", string(body)).
			Msg("storage request rejected")
		return fmt.Errorf("storage request rejected: %s", string(body))
	}
	return nil
}

// signRequest creates the AWS Signature V4 authorization header.
func (s *StorageService) signRequest(req *http.Request, payloadHash, amzDate, dateStamp string) string {
	service := "s3"

	canonicalURI := req.URL.Path
	if canonicalURI == "" {
		canonicalURI = "/"
	}
	canonicalQueryString := ""

	// Content-Type is only present on uploads.
	signedHeaders := []string{"host", "x-amz-content-sha256", "x-amz-date"}
	if req.Header.Get("Content-Type") != "" {
		signedHeaders = append([]string{"content-type"}, signedHeaders...)
	}

	var canonicalHeaders strings.Builder
	for _, h := range signedHeaders {
		canonicalHeaders.WriteString(h)
		canonicalHeaders.WriteString(":")
		canonicalHeaders.WriteString(strings.TrimSpace(req.Header.Get(h)))
		canonicalHeaders.WriteString("\n")
	}

	signedHeadersStr := strings.Join(signedHeaders, ";")

	canonicalRequest := fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s",
		req.Method,
		canonicalURI,
		canonicalQueryString,
		canonicalHeaders.String(),
		signedHeadersStr,
		payloadHash,
	)

	algorithm := "AWS4-HMAC-SHA256"
	credentialScope := fmt.Sprintf("%s/%s/%s/aws4_request", dateStamp, s.region, service)
	stringToSign := fmt.Sprintf("%s\n%s\n%s\n%s",
		algorithm,
		amzDate,
		credentialScope,
		sha256Hex([]byte(canonicalRequest)),
	)

	kDate := hmacSHA256([]byte("AWS4"+s.secretAccessKey), []byte(dateStamp))
	kRegion := hmacSHA256(kDate, []byte(s.region))
	kService := hmacSHA256(kRegion, []byte(service))
	kSigning := hmacSHA256(kService, []byte("aws4_request"))

	signature := hex.EncodeToString(hmacSHA256(kSigning, []byte(stringToSign)))

	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		algorithm,
		s.accessKeyID,
		credentialScope,
		signedHeadersStr,
		signature,
	)
}

// sha256Hex computes SHA256 hash and returns hex string.
func sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// hmacSHA256 computes HMAC-SHA256.
func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
