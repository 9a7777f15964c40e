// Package email delivers transactional mail for the storefront.
//
// Sender is the narrow interface the rest of the code depends on. Two
// implementations are provided: a Postmark-backed client for deployed
// environments and DevSender, which writes each message to disk as an HTML
// body plus a JSON metadata file so links can be clicked locally.
//
// Message bodies are produced by the templates subpackage.
package email
