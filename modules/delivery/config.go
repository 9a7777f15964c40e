package delivery

import (
	"strings"
	"time"
)

// DefaultAccessPath is where access links point when ACCESS_PATH is unset.
const DefaultAccessPath = "/access"

// Config is read from the environment with pkg/config.
type Config struct {
	BaseURL    string `env:"BASE_URL,required"` // public storefront origin, e.g. https://shop.example.com
	AccessPath string `env:"ACCESS_PATH" envDefault:"/access"`

	// Resend requests are limited per client IP and per recipient.
	ResendBurst    int           `env:"RESEND_BURST" envDefault:"3"`
	ResendInterval time.Duration `env:"RESEND_INTERVAL" envDefault:"10m"`
}

// normalizeAccessPath returns path with one leading slash and no trailing one.
func normalizeAccessPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return DefaultAccessPath
	}
	return "/" + path
}
