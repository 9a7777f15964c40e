// Package download issues short-lived links to purchased files kept in an
// S3 or S3-compatible bucket.
//
// Files are never public. Each call to Linker.Link returns a presigned GET URL
// that stops working after the configured TTL, so a leaked download URL has a
// much shorter life than the access token that produced it.
//
//	l, err := download.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	link, err := l.Link(ctx, "products/ebook.pdf", "ebook.pdf")
package download
