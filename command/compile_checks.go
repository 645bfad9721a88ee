package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[AuthorisePaymentMessage]      = (*AuthorisePaymentCommand)(nil)
	_ gocmd.Commander[CapturePaymentMessage]        = (*CapturePaymentCommand)(nil)
	_ gocmd.Commander[CancelPaymentMessage]         = (*CancelPaymentCommand)(nil)
	_ gocmd.Commander[RefundPaymentMessage]         = (*RefundPaymentCommand)(nil)
	_ gocmd.Commander[CancelOrRefundPaymentMessage] = (*CancelOrRefundPaymentCommand)(nil)
	_ gocmd.Commander[CheckoutPaymentMessage]       = (*CheckoutPaymentCommand)(nil)
	_ gocmd.Commander[CheckoutSessionMessage]       = (*CheckoutSessionCommand)(nil)
	_ gocmd.Commander[DispatchWebhookMessage]       = (*DispatchWebhookCommand)(nil)
)
