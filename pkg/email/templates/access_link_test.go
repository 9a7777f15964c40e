package templates_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventaro/storefront/pkg/email/templates"
)

func TestAccessLink(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.AccessLink(templates.AccessLinkData{
		Products:     []string{"Prompt Pack <Pro>", "Guide"},
		AccessURL:    "https://shop.example.com/access?token=abc.def",
		ExpiresAt:    time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		SupportEmail: "help@example.com",
	}))
	require.NoError(t, err)

	assert.Contains(t, html, `href="https://shop.example.com/access?token=abc.def"`)
	assert.Contains(t, html, "Prompt Pack &lt;Pro&gt;")
	assert.Contains(t, html, "<li>Guide</li>")
	assert.Contains(t, html, "March 1, 2026 at 12:30 UTC")
	assert.Contains(t, html, "help@example.com")
}

func TestAccessLink_UnsafeURL(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.AccessLink(templates.AccessLinkData{
		AccessURL: "javascript:alert(1)",
	}))
	require.NoError(t, err)
	assert.NotContains(t, html, "javascript:")
}
