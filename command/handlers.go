package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-adyen/checkout"
	"github.com/goliatone/go-adyen/payments"
	"github.com/goliatone/go-adyen/webhooks"
)

// ClassicPaymentService is the classic payments surface the commands
// drive. *payments.API satisfies it.
type ClassicPaymentService interface {
	Authorise(ctx context.Context, req payments.PaymentRequest) (*payments.PaymentResult, error)
	Capture(ctx context.Context, req payments.CaptureRequest) (*payments.ModificationResult, error)
	Cancel(ctx context.Context, req payments.CancelRequest) (*payments.ModificationResult, error)
	Refund(ctx context.Context, req payments.RefundRequest) (*payments.ModificationResult, error)
	CancelOrRefund(ctx context.Context, req payments.CancelOrRefundRequest) (*payments.ModificationResult, error)
}

// CheckoutService is the checkout surface the commands drive.
// *checkout.API satisfies it.
type CheckoutService interface {
	Payments(ctx context.Context, req checkout.PaymentRequest) (*checkout.PaymentResponse, error)
	Sessions(ctx context.Context, req checkout.CreateSessionRequest) (*checkout.CreateSessionResponse, error)
}

// WebhookService dispatches raw webhook payloads.
// *webhooks.Dispatcher satisfies it.
type WebhookService interface {
	DispatchPayload(ctx context.Context, payload []byte) (webhooks.DispatchStats, error)
}

type AuthorisePaymentCommand struct {
	service ClassicPaymentService
}

func NewAuthorisePaymentCommand(service ClassicPaymentService) *AuthorisePaymentCommand {
	return &AuthorisePaymentCommand{service: service}
}

func (c *AuthorisePaymentCommand) Execute(ctx context.Context, msg AuthorisePaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.Authorise(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, *out)
	return nil
}

type CapturePaymentCommand struct {
	service ClassicPaymentService
}

func NewCapturePaymentCommand(service ClassicPaymentService) *CapturePaymentCommand {
	return &CapturePaymentCommand{service: service}
}

func (c *CapturePaymentCommand) Execute(ctx context.Context, msg CapturePaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.Capture(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, *out)
	return nil
}

type CancelPaymentCommand struct {
	service ClassicPaymentService
}

func NewCancelPaymentCommand(service ClassicPaymentService) *CancelPaymentCommand {
	return &CancelPaymentCommand{service: service}
}

func (c *CancelPaymentCommand) Execute(ctx context.Context, msg CancelPaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.Cancel(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, *out)
	return nil
}

type RefundPaymentCommand struct {
	service ClassicPaymentService
}

func NewRefundPaymentCommand(service ClassicPaymentService) *RefundPaymentCommand {
	return &RefundPaymentCommand{service: service}
}

func (c *RefundPaymentCommand) Execute(ctx context.Context, msg RefundPaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.Refund(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, *out)
	return nil
}

type CancelOrRefundPaymentCommand struct {
	service ClassicPaymentService
}

func NewCancelOrRefundPaymentCommand(service ClassicPaymentService) *CancelOrRefundPaymentCommand {
	return &CancelOrRefundPaymentCommand{service: service}
}

func (c *CancelOrRefundPaymentCommand) Execute(ctx context.Context, msg CancelOrRefundPaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: payment service is required")
	}
	out, err := c.service.CancelOrRefund(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, *out)
	return nil
}

type CheckoutPaymentCommand struct {
	service CheckoutService
}

func NewCheckoutPaymentCommand(service CheckoutService) *CheckoutPaymentCommand {
	return &CheckoutPaymentCommand{service: service}
}

func (c *CheckoutPaymentCommand) Execute(ctx context.Context, msg CheckoutPaymentMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: checkout service is required")
	}
	out, err := c.service.Payments(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, *out)
	return nil
}

type CheckoutSessionCommand struct {
	service CheckoutService
}

func NewCheckoutSessionCommand(service CheckoutService) *CheckoutSessionCommand {
	return &CheckoutSessionCommand{service: service}
}

func (c *CheckoutSessionCommand) Execute(ctx context.Context, msg CheckoutSessionMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: checkout service is required")
	}
	out, err := c.service.Sessions(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, *out)
	return nil
}

type DispatchWebhookCommand struct {
	service WebhookService
}

func NewDispatchWebhookCommand(service WebhookService) *DispatchWebhookCommand {
	return &DispatchWebhookCommand{service: service}
}

func (c *DispatchWebhookCommand) Execute(ctx context.Context, msg DispatchWebhookMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: webhook dispatcher is required")
	}
	stats, err := c.service.DispatchPayload(ctx, msg.Payload)
	if err != nil {
		return err
	}
	storeResult(ctx, stats)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
