package download

import "time"

// Config is read from the environment with pkg/config.
type Config struct {
	Bucket         string        `env:"S3_BUCKET,required"`
	Region         string        `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string        `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string        `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint       string        `env:"S3_ENDPOINT"`         // MinIO, R2 and friends
	ForcePathStyle bool          `env:"S3_FORCE_PATH_STYLE"` // required by MinIO
	LinkTTL        time.Duration `env:"DOWNLOAD_LINK_TTL" envDefault:"15m"`
}

// MaxLinkTTL is the longest expiry SigV4 accepts for a presigned URL.
const MaxLinkTTL = 7 * 24 * time.Hour

func (c Config) validate() error {
	if c.Bucket == "" || c.Region == "" {
		return ErrInvalidConfig
	}
	if c.LinkTTL <= 0 || c.LinkTTL > MaxLinkTTL {
		return ErrInvalidConfig
	}
	return nil
}
