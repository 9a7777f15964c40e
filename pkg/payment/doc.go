// Package payment receives payment processor webhooks and turns completed
// transactions into Events the delivery flow can act on.
//
// Only Paddle Billing is supported. Signatures are checked with the official
// SDK verifier before the body is parsed. Checkout custom data must carry the
// storefront session ID and the buyer email:
//
//	{"session_id": "sess_123", "order_id": "ord_9", "email": "buyer@example.com"}
package payment
