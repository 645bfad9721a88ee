package adyen

import (
	"github.com/goliatone/go-adyen/checkout"
	"github.com/goliatone/go-adyen/core"
	"github.com/goliatone/go-adyen/payments"
	"github.com/goliatone/go-adyen/transport"
	"github.com/goliatone/go-adyen/webhooks"
	goerrors "github.com/goliatone/go-errors"
)

// Client bundles one executor with the per-endpoint API families so
// they share credentials, retry policy, and logging. It is safe for
// concurrent use.
type Client struct {
	config   core.Config
	executor core.Executor
	payments *payments.API
	checkout *checkout.API
}

// New builds a client from a validated configuration. Executor
// options tune the underlying transport.
func New(cfg core.Config, opts ...ExecutorOption) (*Client, error) {
	executor, err := transport.NewHTTPExecutor(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithExecutor(cfg, executor)
}

// NewWithExecutor builds a client on a caller-supplied executor.
func NewWithExecutor(cfg core.Config, executor core.Executor) (*Client, error) {
	if executor == nil {
		return nil, goerrors.New("adyen: executor is required", goerrors.CategoryValidation).
			WithTextCode(core.ErrorValidation)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	paymentsAPI, err := payments.New(executor, cfg.Environment())
	if err != nil {
		return nil, err
	}
	checkoutAPI, err := checkout.New(executor, cfg.Environment())
	if err != nil {
		return nil, err
	}
	return &Client{
		config:   cfg,
		executor: executor,
		payments: paymentsAPI,
		checkout: checkoutAPI,
	}, nil
}

// Payments returns the Classic Payments and Modifications API.
func (c *Client) Payments() *payments.API {
	if c == nil {
		return nil
	}
	return c.payments
}

// Checkout returns the Checkout v71 API.
func (c *Client) Checkout() *checkout.API {
	if c == nil {
		return nil
	}
	return c.checkout
}

// Executor returns the shared request executor.
func (c *Client) Executor() core.Executor {
	if c == nil {
		return nil
	}
	return c.executor
}

// Config returns the client configuration.
func (c *Client) Config() core.Config {
	if c == nil {
		return core.Config{}
	}
	return c.config
}

// NewWebhookDispatcher builds a dispatcher that validates incoming
// notifications against the given HMAC key before routing them.
func NewWebhookDispatcher(hmacHexKey string, opts ...webhooks.DispatcherOption) (*webhooks.Dispatcher, error) {
	validator, err := webhooks.NewHMACValidator(hmacHexKey)
	if err != nil {
		return nil, err
	}
	return webhooks.NewDispatcher(validator, opts...), nil
}
