// Package adyen is a typed client for the Adyen payment platform.
// It wires the resilient HTTP executor to the classic payments and
// checkout API families and exposes webhook validation and dispatch.
package adyen

import (
	"github.com/goliatone/go-adyen/core"
	"github.com/goliatone/go-adyen/transport"
)

// Re-exported configuration surface so most integrations only import
// this package.
type (
	Config        = core.Config
	ConfigBuilder = core.ConfigBuilder
	Environment   = core.Environment
	Credentials   = core.Credentials
	Amount        = core.Amount
	Currency      = core.Currency
)

var (
	NewConfigBuilder     = core.NewConfigBuilder
	EnvTest              = core.EnvTest
	EnvLive              = core.EnvLive
	NewAmount            = core.NewAmount
	AmountFromMajor      = core.AmountFromMajorUnits
	ParseCurrency        = core.ParseCurrency
	NewAPIKeyCredentials = core.NewAPIKeyCredentials
	NewBasicCredentials  = core.NewBasicCredentials
)

// Executor option forwarding, so callers can tune the transport
// without importing it.
type ExecutorOption = transport.Option

var (
	WithHTTPClient        = transport.WithHTTPClient
	WithLogger            = transport.WithLogger
	WithMetricsRecorder   = transport.WithMetricsRecorder
	WithBackoffScheduler  = transport.WithBackoffScheduler
	WithResponseBodyLimit = transport.WithResponseBodyLimit
)
