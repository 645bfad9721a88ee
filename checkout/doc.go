// Package checkout exposes the Checkout API (v71): payment methods
// enumeration, payments and payment details, hosted sessions, and
// the per-payment modification endpoints.
package checkout
