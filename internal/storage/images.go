package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	xwebp "golang.org/x/image/webp"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

const (
	MaxImageSide  = 1024
	MaxUploadSize = 5 << 20
)

// S3API is the subset of the S3 client used by ImageStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// ImageStore normalises service images to WebP and uploads them.
type ImageStore struct {
	client  S3API
	bucket  string
	baseURL string
}

// NewS3Client builds a client from static credentials. A custom endpoint
// switches to path-style addressing for S3-compatible stores.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func NewImageStore(client S3API, cfg S3Config) *ImageStore {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" && cfg.Bucket != "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &ImageStore{client: client, bucket: cfg.Bucket, baseURL: base}
}

func (s *ImageStore) Enabled() bool {
	return s != nil && s.client != nil && s.bucket != ""
}

// UploadServiceImage re-encodes the upload and returns its public URL.
func (s *ImageStore) UploadServiceImage(ctx context.Context, serviceID uint, r io.Reader) (string, error) {
	if !s.Enabled() {
		return "", httperr.External("storage_unavailable", fmt.Errorf("storage: bucket not configured"))
	}

	data, err := Normalize(r)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("services/%d/%s.webp", serviceID, uuid.NewString())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", httperr.External("storage_failed", fmt.Errorf("storage: s3 put %s: %w", key, err))
	}

	return s.baseURL + "/" + key, nil
}

// Normalize decodes a JPEG, PNG or WebP image, shrinks it so neither side
// exceeds MaxImageSide and encodes the result as WebP.
func Normalize(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxUploadSize {
		return nil, httperr.Validation("image_too_large", "Image must be at most 5MB.")
	}

	img, err := decode(raw)
	if err != nil {
		return nil, httperr.Validation("invalid_image", "Image must be JPEG, PNG or WebP.")
	}

	img = shrink(img, MaxImageSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("storage: encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (image.Image, error) {
	if http.DetectContentType(raw) == "image/webp" {
		return xwebp.Decode(bytes.NewReader(raw))
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	return img, err
}

func shrink(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
