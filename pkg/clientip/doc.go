// Package clientip resolves the client address of an HTTP request.
//
// Forwarding headers are only honoured when listed explicitly, because any
// client can send them. Deployments behind a proxy configure the header that
// proxy sets; everything else falls back to RemoteAddr.
//
//	r.Use(clientip.Middleware("CF-Connecting-IP"))
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
