package adyen

import (
	adyencommand "github.com/goliatone/go-adyen/command"
	"github.com/goliatone/go-adyen/core"
	"github.com/goliatone/go-adyen/webhooks"
	goerrors "github.com/goliatone/go-errors"
)

// Commands groups the message handlers built over one client.
type Commands struct {
	AuthorisePayment      *adyencommand.AuthorisePaymentCommand
	CapturePayment        *adyencommand.CapturePaymentCommand
	CancelPayment         *adyencommand.CancelPaymentCommand
	RefundPayment         *adyencommand.RefundPaymentCommand
	CancelOrRefundPayment *adyencommand.CancelOrRefundPaymentCommand
	CheckoutPayment       *adyencommand.CheckoutPaymentCommand
	CheckoutSession       *adyencommand.CheckoutSessionCommand
	DispatchWebhook       *adyencommand.DispatchWebhookCommand
}

// Facade exposes the client's operations as dispatchable commands so
// callers integrating through a message router register one set of
// handlers instead of wiring each API family.
type Facade struct {
	client   *Client
	commands Commands
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	dispatcher *webhooks.Dispatcher
}

// WithWebhookDispatcher wires webhook dispatch into the facade's
// command set.
func WithWebhookDispatcher(dispatcher *webhooks.Dispatcher) FacadeOption {
	return func(options *facadeOptions) {
		options.dispatcher = dispatcher
	}
}

func NewFacade(client *Client, opts ...FacadeOption) (*Facade, error) {
	if client == nil {
		return nil, goerrors.New("adyen: client is required", goerrors.CategoryValidation).
			WithTextCode(core.ErrorValidation)
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	facade := &Facade{client: client}
	facade.commands = Commands{
		AuthorisePayment:      adyencommand.NewAuthorisePaymentCommand(client.Payments()),
		CapturePayment:        adyencommand.NewCapturePaymentCommand(client.Payments()),
		CancelPayment:         adyencommand.NewCancelPaymentCommand(client.Payments()),
		RefundPayment:         adyencommand.NewRefundPaymentCommand(client.Payments()),
		CancelOrRefundPayment: adyencommand.NewCancelOrRefundPaymentCommand(client.Payments()),
		CheckoutPayment:       adyencommand.NewCheckoutPaymentCommand(client.Checkout()),
		CheckoutSession:       adyencommand.NewCheckoutSessionCommand(client.Checkout()),
	}
	if cfg.dispatcher != nil {
		facade.commands.DispatchWebhook = adyencommand.NewDispatchWebhookCommand(cfg.dispatcher)
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Client() *Client {
	if f == nil {
		return nil
	}
	return f.client
}
