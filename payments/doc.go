// Package payments exposes the Classic Payments and Modifications
// API families (v68). Requests are authorised and retried by the
// core executor; this package only shapes the typed payloads and
// endpoint paths.
package payments
