package adyen_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	adyen "github.com/goliatone/go-adyen"
	"github.com/goliatone/go-adyen/core"
	"github.com/goliatone/go-adyen/payments"
	"github.com/goliatone/go-adyen/webhooks"
)

type stubDoer struct {
	requests []*http.Request
	status   int
	body     string
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.requests = append(s.requests, req)
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(s.body))),
		Header:     http.Header{},
	}, nil
}

func testConfig(t *testing.T) adyen.Config {
	t.Helper()
	cfg, err := adyen.NewConfigBuilder().
		Environment(adyen.EnvTest()).
		APIKey("AQEyhmfxK4nKaxxDw0m/n3Q5qf3Ve").
		Build()
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	return cfg
}

func TestClientWiresPaymentFamilies(t *testing.T) {
	doer := &stubDoer{status: 200, body: `{"resultCode": "Authorised", "pspReference": "8515131751004933"}`}
	client, err := adyen.New(testConfig(t), adyen.WithHTTPClient(doer))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	result, err := client.Payments().Authorise(context.Background(), payments.PaymentRequest{
		Amount:          adyen.NewAmount(1000, core.CurrencyEUR),
		MerchantAccount: "TestMerchant",
		Reference:       "order-12345",
		Card:            &payments.Card{Number: "4111111111111111", ExpiryMonth: "03", ExpiryYear: "2030", CVC: "737"},
	})
	if err != nil {
		t.Fatalf("authorise: %v", err)
	}
	if !result.IsAuthorised() {
		t.Fatalf("expected authorised, got %q", result.ResultCode)
	}

	if len(doer.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(doer.requests))
	}
	req := doer.requests[0]
	if req.URL.Host != "pal-test.adyen.com" {
		t.Fatalf("unexpected host %q", req.URL.Host)
	}
	if req.Header.Get("X-API-Key") == "" {
		t.Fatalf("expected API key header")
	}

	if client.Checkout() == nil {
		t.Fatalf("expected checkout API")
	}
	if client.Executor() == nil {
		t.Fatalf("expected shared executor")
	}
}

func TestNewWithExecutorRequiresExecutor(t *testing.T) {
	if _, err := adyen.NewWithExecutor(testConfig(t), nil); err == nil {
		t.Fatalf("expected error for nil executor")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := adyen.New(adyen.Config{}); err == nil {
		t.Fatalf("expected error for zero config")
	}
}

func TestFacadeBuildsCommands(t *testing.T) {
	doer := &stubDoer{status: 200, body: `{}`}
	client, err := adyen.New(testConfig(t), adyen.WithHTTPClient(doer))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	dispatcher, err := adyen.NewWebhookDispatcher("44782DEF547AAA06C910C43932B1EB0C71FC68D9D0C057550C48EC2ACF6BA056")
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}

	facade, err := adyen.NewFacade(client, adyen.WithWebhookDispatcher(dispatcher))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	commands := facade.Commands()
	if commands.AuthorisePayment == nil || commands.CapturePayment == nil ||
		commands.CheckoutPayment == nil || commands.CheckoutSession == nil {
		t.Fatalf("expected payment commands to be wired: %+v", commands)
	}
	if commands.DispatchWebhook == nil {
		t.Fatalf("expected webhook command when a dispatcher is supplied")
	}
	if facade.Client() != client {
		t.Fatalf("expected facade to expose its client")
	}

	bare, err := adyen.NewFacade(client)
	if err != nil {
		t.Fatalf("new facade without dispatcher: %v", err)
	}
	if bare.Commands().DispatchWebhook != nil {
		t.Fatalf("webhook command requires a dispatcher")
	}

	if _, err := adyen.NewFacade(nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestNewWebhookDispatcherRejectsBadKey(t *testing.T) {
	if _, err := adyen.NewWebhookDispatcher("not-hex"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
	dispatcher, err := adyen.NewWebhookDispatcher("44782DEF547AAA06C910C43932B1EB0C71FC68D9D0C057550C48EC2ACF6BA056")
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	if err := dispatcher.Register(webhooks.EventCodeAuthorisation, webhooks.HandlerFunc(
		func(context.Context, webhooks.NotificationRequestItem) error { return nil },
	)); err != nil {
		t.Fatalf("register: %v", err)
	}
}
