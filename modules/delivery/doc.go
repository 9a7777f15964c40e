// Package delivery turns paid checkouts into access links and serves the
// purchases behind them.
//
// The flow is stateless apart from the purchase records:
//
//  1. The payment webhook stores one purchase per product and emails the
//     buyer a link carrying a signed access token.
//  2. Opening the link verifies the token and lists the purchases for the
//     session and email it names, each with a short-lived download URL.
//  3. A buyer who lost the email can ask for a new link. The answer is the
//     same whether or not the session exists.
package delivery
