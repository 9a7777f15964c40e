package accesstoken

import "time"

// Config holds the environment-derived settings for a Manager.
// Secrets are listed in priority order; the first non-empty one wins.
type Config struct {
	Secret          string        `env:"ACCESS_TOKEN_SECRET"`
	MagicLinkSecret string        `env:"MAGIC_LINK_SECRET"`
	AuthSecret      string        `env:"AUTH_SECRET"`
	TTL             time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
}

// Secrets returns the configured secret candidates in priority order.
func (c Config) Secrets() []string {
	return []string{c.Secret, c.MagicLinkSecret, c.AuthSecret}
}

// NewFromConfig resolves the secret from cfg and builds a Manager.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	secret, err := ResolveSecret(cfg.Secrets()...)
	if err != nil {
		return nil, err
	}

	configOpts := make([]Option, 0, 1+len(opts))
	if cfg.TTL > 0 {
		configOpts = append(configOpts, WithDefaultTTL(cfg.TTL))
	}
	configOpts = append(configOpts, opts...)

	return New(secret, configOpts...)
}
