package command

import (
	"strings"

	"github.com/goliatone/go-adyen/checkout"
	"github.com/goliatone/go-adyen/payments"
)

const (
	TypeAuthorisePayment      = "adyen.command.payment.authorise"
	TypeCapturePayment        = "adyen.command.payment.capture"
	TypeCancelPayment         = "adyen.command.payment.cancel"
	TypeRefundPayment         = "adyen.command.payment.refund"
	TypeCancelOrRefundPayment = "adyen.command.payment.cancel_or_refund"
	TypeCheckoutPayment       = "adyen.command.checkout.payment"
	TypeCheckoutSession       = "adyen.command.checkout.session"
	TypeDispatchWebhook       = "adyen.command.webhook.dispatch"
)

type AuthorisePaymentMessage struct {
	Request payments.PaymentRequest
}

func (AuthorisePaymentMessage) Type() string { return TypeAuthorisePayment }

func (m AuthorisePaymentMessage) Validate() error {
	return commandWrapValidation(m.Request.Validate(), "command: invalid authorise request")
}

type CapturePaymentMessage struct {
	Request payments.CaptureRequest
}

func (CapturePaymentMessage) Type() string { return TypeCapturePayment }

func (m CapturePaymentMessage) Validate() error {
	return commandWrapValidation(m.Request.Validate(), "command: invalid capture request")
}

type CancelPaymentMessage struct {
	Request payments.CancelRequest
}

func (CancelPaymentMessage) Type() string { return TypeCancelPayment }

func (m CancelPaymentMessage) Validate() error {
	return commandWrapValidation(m.Request.Validate(), "command: invalid cancel request")
}

type RefundPaymentMessage struct {
	Request payments.RefundRequest
}

func (RefundPaymentMessage) Type() string { return TypeRefundPayment }

func (m RefundPaymentMessage) Validate() error {
	return commandWrapValidation(m.Request.Validate(), "command: invalid refund request")
}

type CancelOrRefundPaymentMessage struct {
	Request payments.CancelOrRefundRequest
}

func (CancelOrRefundPaymentMessage) Type() string { return TypeCancelOrRefundPayment }

func (m CancelOrRefundPaymentMessage) Validate() error {
	return commandWrapValidation(m.Request.Validate(), "command: invalid cancel-or-refund request")
}

type CheckoutPaymentMessage struct {
	Request checkout.PaymentRequest
}

func (CheckoutPaymentMessage) Type() string { return TypeCheckoutPayment }

func (m CheckoutPaymentMessage) Validate() error {
	return commandWrapValidation(m.Request.Validate(), "command: invalid checkout payment request")
}

type CheckoutSessionMessage struct {
	Request checkout.CreateSessionRequest
}

func (CheckoutSessionMessage) Type() string { return TypeCheckoutSession }

func (m CheckoutSessionMessage) Validate() error {
	return commandWrapValidation(m.Request.Validate(), "command: invalid checkout session request")
}

type DispatchWebhookMessage struct {
	Payload []byte
}

func (DispatchWebhookMessage) Type() string { return TypeDispatchWebhook }

func (m DispatchWebhookMessage) Validate() error {
	if strings.TrimSpace(string(m.Payload)) == "" {
		return commandValidationError("payload", "webhook payload is required")
	}
	return nil
}
