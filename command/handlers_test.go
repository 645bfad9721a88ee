package command

import (
	"context"
	"testing"

	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-adyen/checkout"
	"github.com/goliatone/go-adyen/core"
	"github.com/goliatone/go-adyen/payments"
	"github.com/goliatone/go-adyen/webhooks"
)

type stubPaymentService struct {
	authoriseFn      func(context.Context, payments.PaymentRequest) (*payments.PaymentResult, error)
	captureFn        func(context.Context, payments.CaptureRequest) (*payments.ModificationResult, error)
	cancelFn         func(context.Context, payments.CancelRequest) (*payments.ModificationResult, error)
	refundFn         func(context.Context, payments.RefundRequest) (*payments.ModificationResult, error)
	cancelOrRefundFn func(context.Context, payments.CancelOrRefundRequest) (*payments.ModificationResult, error)
}

func (s stubPaymentService) Authorise(ctx context.Context, req payments.PaymentRequest) (*payments.PaymentResult, error) {
	return s.authoriseFn(ctx, req)
}

func (s stubPaymentService) Capture(ctx context.Context, req payments.CaptureRequest) (*payments.ModificationResult, error) {
	return s.captureFn(ctx, req)
}

func (s stubPaymentService) Cancel(ctx context.Context, req payments.CancelRequest) (*payments.ModificationResult, error) {
	return s.cancelFn(ctx, req)
}

func (s stubPaymentService) Refund(ctx context.Context, req payments.RefundRequest) (*payments.ModificationResult, error) {
	return s.refundFn(ctx, req)
}

func (s stubPaymentService) CancelOrRefund(ctx context.Context, req payments.CancelOrRefundRequest) (*payments.ModificationResult, error) {
	return s.cancelOrRefundFn(ctx, req)
}

type stubCheckoutService struct {
	paymentsFn func(context.Context, checkout.PaymentRequest) (*checkout.PaymentResponse, error)
	sessionsFn func(context.Context, checkout.CreateSessionRequest) (*checkout.CreateSessionResponse, error)
}

func (s stubCheckoutService) Payments(ctx context.Context, req checkout.PaymentRequest) (*checkout.PaymentResponse, error) {
	return s.paymentsFn(ctx, req)
}

func (s stubCheckoutService) Sessions(ctx context.Context, req checkout.CreateSessionRequest) (*checkout.CreateSessionResponse, error) {
	return s.sessionsFn(ctx, req)
}

type stubWebhookService struct {
	dispatchFn func(context.Context, []byte) (webhooks.DispatchStats, error)
}

func (s stubWebhookService) DispatchPayload(ctx context.Context, payload []byte) (webhooks.DispatchStats, error) {
	return s.dispatchFn(ctx, payload)
}

func TestAuthorisePaymentCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := payments.PaymentResult{ResultCode: payments.ResultAuthorised, PSPReference: "8515131751004933"}
	called := false

	svc := stubPaymentService{
		authoriseFn: func(_ context.Context, req payments.PaymentRequest) (*payments.PaymentResult, error) {
			called = true
			if req.Reference != "order-12345" {
				t.Fatalf("expected reference order-12345, got %q", req.Reference)
			}
			return &expected, nil
		},
	}

	cmd := NewAuthorisePaymentCommand(svc)
	collector := gocmd.NewResult[payments.PaymentResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, AuthorisePaymentMessage{Request: payments.PaymentRequest{
		Amount:          core.NewAmount(1000, core.CurrencyEUR),
		MerchantAccount: "TestMerchant",
		Reference:       "order-12345",
		Card:            &payments.Card{Number: "4111111111111111", ExpiryMonth: "03", ExpiryYear: "2030", CVC: "737"},
	}})
	if err != nil {
		t.Fatalf("execute authorise: %v", err)
	}
	if !called {
		t.Fatalf("expected authorise service invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.PSPReference != expected.PSPReference || result.ResultCode != expected.ResultCode {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestModificationCommands_DelegateToService(t *testing.T) {
	t.Run("capture", func(t *testing.T) {
		called := false
		svc := stubPaymentService{
			captureFn: func(_ context.Context, req payments.CaptureRequest) (*payments.ModificationResult, error) {
				called = true
				if req.OriginalReference != "psp-1" {
					t.Fatalf("unexpected capture payload: %#v", req)
				}
				return &payments.ModificationResult{PSPReference: "m-1", Response: payments.ResponseCaptureReceived}, nil
			},
		}
		cmd := NewCapturePaymentCommand(svc)
		collector := gocmd.NewResult[payments.ModificationResult]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		err := cmd.Execute(ctx, CapturePaymentMessage{Request: payments.CaptureRequest{
			MerchantAccount:    "TestMerchant",
			ModificationAmount: core.NewAmount(1000, core.CurrencyEUR),
			OriginalReference:  "psp-1",
		}})
		if err != nil {
			t.Fatalf("execute capture: %v", err)
		}
		if !called {
			t.Fatalf("expected capture invocation")
		}
		stored, ok := collector.Load()
		if !ok || stored.Response != payments.ResponseCaptureReceived {
			t.Fatalf("unexpected stored result: %#v ok=%v", stored, ok)
		}
	})

	t.Run("cancel or refund", func(t *testing.T) {
		svc := stubPaymentService{
			cancelOrRefundFn: func(_ context.Context, req payments.CancelOrRefundRequest) (*payments.ModificationResult, error) {
				return &payments.ModificationResult{PSPReference: "m-2", Response: payments.ResponseCancelOrRefundReceived}, nil
			},
		}
		cmd := NewCancelOrRefundPaymentCommand(svc)
		err := cmd.Execute(context.Background(), CancelOrRefundPaymentMessage{Request: payments.CancelOrRefundRequest{
			MerchantAccount:   "TestMerchant",
			OriginalReference: "psp-1",
		}})
		if err != nil {
			t.Fatalf("execute cancel or refund: %v", err)
		}
	})
}

func TestCheckoutCommands_DelegateToService(t *testing.T) {
	svc := stubCheckoutService{
		paymentsFn: func(_ context.Context, req checkout.PaymentRequest) (*checkout.PaymentResponse, error) {
			return &checkout.PaymentResponse{ResultCode: checkout.ResultAuthorised, PSPReference: "8837968462092105"}, nil
		},
		sessionsFn: func(_ context.Context, req checkout.CreateSessionRequest) (*checkout.CreateSessionResponse, error) {
			return &checkout.CreateSessionResponse{ID: "CS123", SessionData: "blob"}, nil
		},
	}

	paymentCmd := NewCheckoutPaymentCommand(svc)
	collector := gocmd.NewResult[checkout.PaymentResponse]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	err := paymentCmd.Execute(ctx, CheckoutPaymentMessage{Request: checkout.PaymentRequest{
		Amount:          core.NewAmount(1000, core.CurrencyEUR),
		MerchantAccount: "TestMerchant",
		Reference:       "order-12345",
		ReturnURL:       "https://shop.example.com/return",
		PaymentMethod:   checkout.CardDetails("4111111111111111", "03", "2030", "737", ""),
	}})
	if err != nil {
		t.Fatalf("execute checkout payment: %v", err)
	}
	stored, ok := collector.Load()
	if !ok || stored.PSPReference != "8837968462092105" {
		t.Fatalf("unexpected stored response: %#v ok=%v", stored, ok)
	}

	sessionCmd := NewCheckoutSessionCommand(svc)
	sessionCollector := gocmd.NewResult[checkout.CreateSessionResponse]()
	ctx = gocmd.ContextWithResult(context.Background(), sessionCollector)
	err = sessionCmd.Execute(ctx, CheckoutSessionMessage{Request: checkout.CreateSessionRequest{
		Amount:          core.NewAmount(1000, core.CurrencyEUR),
		MerchantAccount: "TestMerchant",
		Reference:       "order-12345",
		ReturnURL:       "https://shop.example.com/return",
	}})
	if err != nil {
		t.Fatalf("execute checkout session: %v", err)
	}
	session, ok := sessionCollector.Load()
	if !ok || session.ID != "CS123" {
		t.Fatalf("unexpected stored session: %#v ok=%v", session, ok)
	}
}

func TestDispatchWebhookCommand_StoresStats(t *testing.T) {
	svc := stubWebhookService{
		dispatchFn: func(_ context.Context, payload []byte) (webhooks.DispatchStats, error) {
			if len(payload) == 0 {
				t.Fatalf("expected payload bytes")
			}
			return webhooks.DispatchStats{Delivered: 2, Duplicates: 1}, nil
		},
	}
	cmd := NewDispatchWebhookCommand(svc)
	collector := gocmd.NewResult[webhooks.DispatchStats]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, DispatchWebhookMessage{Payload: []byte(`{"live":"false"}`)}); err != nil {
		t.Fatalf("execute dispatch webhook: %v", err)
	}
	stats, ok := collector.Load()
	if !ok || stats.Delivered != 2 || stats.Duplicates != 1 {
		t.Fatalf("unexpected stats: %#v ok=%v", stats, ok)
	}
}

func TestCommands_RequireService(t *testing.T) {
	if err := NewAuthorisePaymentCommand(nil).Execute(context.Background(), AuthorisePaymentMessage{}); err == nil {
		t.Fatalf("expected dependency error")
	}
	if err := NewDispatchWebhookCommand(nil).Execute(context.Background(), DispatchWebhookMessage{}); err == nil {
		t.Fatalf("expected dependency error")
	}
}

func TestMessageValidation(t *testing.T) {
	if err := (AuthorisePaymentMessage{}).Validate(); err == nil {
		t.Fatalf("expected validation error for empty authorise message")
	}
	if err := (DispatchWebhookMessage{}).Validate(); err == nil {
		t.Fatalf("expected validation error for empty webhook payload")
	}
	valid := AuthorisePaymentMessage{Request: payments.PaymentRequest{
		Amount:          core.NewAmount(1000, core.CurrencyEUR),
		MerchantAccount: "TestMerchant",
		Reference:       "order-12345",
		Card:            &payments.Card{Number: "4111111111111111", ExpiryMonth: "03", ExpiryYear: "2030", CVC: "737"},
	}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if valid.Type() != TypeAuthorisePayment {
		t.Fatalf("unexpected type %q", valid.Type())
	}
}
