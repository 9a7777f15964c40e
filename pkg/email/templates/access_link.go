package templates

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// AccessLinkData feeds the purchase access email.
type AccessLinkData struct {
	Products     []string
	AccessURL    string
	ExpiresAt    time.Time
	SupportEmail string
}

// AccessLinkSubject is the subject line of the access email.
const AccessLinkSubject = "Your download link"

// AccessLink is the email sent after payment and on resend requests.
func AccessLink(d AccessLinkData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html><html><body style="font-family:sans-serif">`)
		b.WriteString(`<h1>Thanks for your purchase</h1>`)

		if len(d.Products) > 0 {
			b.WriteString(`<p>Your order includes:</p><ul>`)
			for _, p := range d.Products {
				b.WriteString(`<li>` + templ.EscapeString(p) + `</li>`)
			}
			b.WriteString(`</ul>`)
		}

		href := string(templ.URL(d.AccessURL))
		fmt.Fprintf(&b, `<p><a href="%s">Access your downloads</a></p>`, templ.EscapeString(href))
		fmt.Fprintf(&b, `<p>This link is personal and expires on %s.</p>`,
			templ.EscapeString(d.ExpiresAt.UTC().Format("January 2, 2006 at 15:04 UTC")))

		if d.SupportEmail != "" {
			fmt.Fprintf(&b, `<p>Questions? Reply to this email or write to %s.</p>`, templ.EscapeString(d.SupportEmail))
		}
		b.WriteString(`</body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
