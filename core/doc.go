// Package core holds the HTTP response and request plumbing shared by the
// storefront modules: typed HTTP errors, JSON envelopes, request decoding and
// the Handle adapter that renders a Response or falls back to a JSON error.
package core
