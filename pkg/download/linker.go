package download

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Presigner is the part of s3.PresignClient used by Linker.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// BucketClient is the part of s3.Client used for readiness probes.
type BucketClient interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Link is a presigned download URL.
type Link struct {
	URL       string
	ExpiresAt time.Time
}

// Linker presigns GET requests for objects in a single bucket.
// It is safe for concurrent use.
type Linker struct {
	presigner Presigner
	client    BucketClient
	bucket    string
	ttl       time.Duration
	now       func() time.Time
}

// Option configures a Linker.
type Option func(*options)

type options struct {
	presigner     Presigner
	client        BucketClient
	configOptions []func(*config.LoadOptions) error
	now           func() time.Time
}

// WithPresigner replaces the SDK presign client. Intended for tests.
func WithPresigner(p Presigner) Option {
	return func(o *options) { o.presigner = p }
}

// WithBucketClient replaces the SDK client used by Ping. Intended for tests.
func WithBucketClient(c BucketClient) Option {
	return func(o *options) { o.client = c }
}

// WithConfigOption adds an AWS config load option.
func WithConfigOption(opt func(*config.LoadOptions) error) Option {
	return func(o *options) { o.configOptions = append(o.configOptions, opt) }
}

// WithClock overrides the clock used to report link expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds a Linker from cfg. AWS credentials fall back to the default
// provider chain when cfg carries no static keys.
func New(ctx context.Context, cfg Config, opts ...Option) (*Linker, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	if o.presigner == nil || o.client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client := s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
		if o.presigner == nil {
			o.presigner = s3.NewPresignClient(client)
		}
		if o.client == nil {
			o.client = client
		}
	}

	return &Linker{
		presigner: o.presigner,
		client:    o.client,
		bucket:    cfg.Bucket,
		ttl:       cfg.LinkTTL,
		now:       o.now,
	}, nil
}

// TTL reports how long issued links stay valid.
func (l *Linker) TTL() time.Duration { return l.ttl }

// Link presigns a GET for key. The response is served as an attachment named
// filename, or the last element of key when filename is empty.
func (l *Linker) Link(ctx context.Context, key, filename string) (Link, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return Link{}, ErrEmptyKey
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	}
	if filename == "" {
		filename = path.Base(key)
	}
	input.ResponseContentDisposition = aws.String(mime.FormatMediaType("attachment", map[string]string{"filename": filename}))

	issuedAt := l.now()
	req, err := l.presigner.PresignGetObject(ctx, input, s3.WithPresignExpires(l.ttl))
	if err != nil {
		return Link{}, fmt.Errorf("%w: %w", ErrFailedToPresign, classifyS3Error(err, "presign"))
	}

	return Link{URL: req.URL, ExpiresAt: issuedAt.Add(l.ttl)}, nil
}

// Ping checks that the bucket exists and is reachable with the configured
// credentials.
func (l *Linker) Ping(ctx context.Context) error {
	_, err := l.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(l.bucket)})
	return classifyS3Error(err, "head bucket")
}

func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s", ErrOperationCanceled, operation)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s", ErrAccessDenied, operation)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: %s", ErrServiceUnavailable, operation)
		case "NoSuchBucket", "NotFound":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("%s failed (code: %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
