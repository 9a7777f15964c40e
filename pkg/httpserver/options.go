package httpserver

import (
	"log/slog"
	"time"
)

type settings struct {
	addr            string
	readTimeout     time.Duration
	headerTimeout   time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	log             *slog.Logger
	onShutdown      []func()
}

func defaultSettings() settings {
	return settings{
		addr:            ":8080",
		headerTimeout:   10 * time.Second,
		shutdownTimeout: 5 * time.Second,
	}
}

// Option configures a Server.
type Option func(*settings)

// WithAddr sets the listen address. Panics on an empty address.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr: empty address")
	}
	return func(s *settings) { s.addr = addr }
}

// WithTimeouts sets read, write and idle timeouts. Zero values keep the
// current setting.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *settings) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if idle > 0 {
			s.idleTimeout = idle
		}
	}
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithShutdownTimeout: duration must be > 0")
	}
	return func(s *settings) { s.shutdownTimeout = d }
}

// WithLogger sets the server logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithOnShutdown registers fn to run once the listener has stopped, in
// registration order. Use it to close pools and flush clients.
func WithOnShutdown(fn func()) Option {
	if fn == nil {
		panic("httpserver: WithOnShutdown: nil func")
	}
	return func(s *settings) { s.onShutdown = append(s.onShutdown, fn) }
}
