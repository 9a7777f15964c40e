package token_test

import (
	"strings"
	"testing"

	"github.com/ventaro/storefront/pkg/token"
)

func BenchmarkGenerate(b *testing.B) {
	payload := testPayload{ID: 123, Name: "benchmark"}

	for b.Loop() {
		if _, err := token.Generate(payload, testSecret); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	tok, err := token.Generate(testPayload{ID: 123, Name: "benchmark"}, testSecret)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := token.Parse[testPayload](tok, testSecret); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_LargePayload(b *testing.B) {
	payload := testPayload{ID: 123, Name: strings.Repeat("a", 1024)}
	tok, err := token.Generate(payload, testSecret)
	if err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := token.Parse[testPayload](tok, testSecret); err != nil {
			b.Fatal(err)
		}
	}
}
