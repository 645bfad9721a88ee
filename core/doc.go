// Package core provides the shared foundation for the Adyen client
// library: environment and credential resolution, client
// configuration, monetary value types, and the error envelope used by
// every other package.
//
// Values produced here are immutable after construction and safe to
// share across concurrent callers.
package core
