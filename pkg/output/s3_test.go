package output

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"

	"github.com/df07/go-raytracer/pkg/config"
)

// mockS3 records uploads; every other S3API method panics through the nil embed
type mockS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("upload context has no deadline")
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.input = input
	m.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Write(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		file     string
		wantKey  string
		wantType string
		wantURL  string
	}{
		{"png with prefix", "renders", "default/render.png", "renders/default/render.png", "image/png", "s3://bucket/renders/default/render.png"},
		{"jpeg without prefix", "", "thumb.jpg", "thumb.jpg", "image/jpeg", "s3://bucket/thumb.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockS3{}
			sink := NewS3Sink(client, "bucket", tt.prefix)

			url, err := sink.Write(context.Background(), tt.file, image.NewNRGBA(image.Rect(0, 0, 5, 4)))
			if err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if url != tt.wantURL {
				t.Errorf("Expected %s, got %s", tt.wantURL, url)
			}
			if aws.StringValue(client.input.Bucket) != "bucket" {
				t.Errorf("Wrong bucket %q", aws.StringValue(client.input.Bucket))
			}
			if aws.StringValue(client.input.Key) != tt.wantKey {
				t.Errorf("Expected key %s, got %s", tt.wantKey, aws.StringValue(client.input.Key))
			}
			if aws.StringValue(client.input.ContentType) != tt.wantType {
				t.Errorf("Expected content type %s, got %s", tt.wantType, aws.StringValue(client.input.ContentType))
			}
			if aws.Int64Value(client.input.ContentLength) != int64(len(client.body)) {
				t.Errorf("Content length %d does not match body %d", aws.Int64Value(client.input.ContentLength), len(client.body))
			}
		})
	}
}

func TestS3Sink_BodyDecodes(t *testing.T) {
	client := &mockS3{}
	sink := NewS3Sink(client, "bucket", "")

	if _, err := sink.Write(context.Background(), "render.png", image.NewNRGBA(image.Rect(0, 0, 7, 3))); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(client.body))
	if err != nil {
		t.Fatalf("Uploaded body is not a valid image: %v", err)
	}
	if img.Bounds().Dx() != 7 || img.Bounds().Dy() != 3 {
		t.Errorf("Expected 7x3, got %v", img.Bounds())
	}
}

func TestS3Sink_Errors(t *testing.T) {
	uploadErr := errors.New("access denied")
	sink := NewS3Sink(&mockS3{err: uploadErr}, "bucket", "")
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))

	if _, err := sink.Write(context.Background(), "render.png", img); !errors.Is(err, uploadErr) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
	if _, err := sink.Write(context.Background(), "render.exr", img); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNewS3Client(t *testing.T) {
	client, err := NewS3Client(config.S3Config{
		Bucket:    "bucket",
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewS3Client failed: %v", err)
	}
	if aws.StringValue(client.Config.Region) != "eu-west-1" {
		t.Errorf("Expected region eu-west-1, got %s", aws.StringValue(client.Config.Region))
	}
	if !aws.BoolValue(client.Config.S3ForcePathStyle) {
		t.Error("Custom endpoints should use path-style addressing")
	}
}
