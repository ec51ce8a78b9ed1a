package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"mime"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/config"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 30 * time.Second

// S3Sink uploads images to an S3 bucket
type S3Sink struct {
	Client s3iface.S3API
	Bucket string
	Prefix string
}

// NewS3Client creates an S3 client for the configured endpoint.
// Static credentials are used when an access key is set; otherwise the
// default AWS credential chain applies.
func NewS3Client(cfg config.S3Config) (*s3.S3, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		// S3-compatible stores (MinIO, R2, Spaces) generally need path-style addressing
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// NewS3Sink creates a sink uploading to bucket below prefix
func NewS3Sink(client s3iface.S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{Client: client, Bucket: bucket, Prefix: prefix}
}

// Write implements Sink
func (s *S3Sink) Write(ctx context.Context, name string, img image.Image) (string, error) {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	key := path.Join(s.Prefix, name)
	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(buf.Len())
	_, err = s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.Bucket, key), nil
}
