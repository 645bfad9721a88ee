package checkout

import (
	"context"
	"net/http"
	"net/url"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-adyen/core"
)

const checkoutVersionPath = "/v71"

// API is the Checkout v71 client. It is safe for concurrent use when
// the underlying executor is.
type API struct {
	exec core.Executor
	env  core.Environment
}

// New builds a checkout client on top of an executor.
func New(exec core.Executor, env core.Environment) (*API, error) {
	if exec == nil {
		return nil, goerrors.New("checkout: executor is required", goerrors.CategoryValidation).
			WithTextCode(core.ErrorValidation)
	}
	return &API{exec: exec, env: env}, nil
}

// PaymentMethods returns the payment methods available for the
// merchant, amount, and shopper country.
func (a *API) PaymentMethods(ctx context.Context, req PaymentMethodsRequest) (*PaymentMethodsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out PaymentMethodsResponse
	if err := a.post(ctx, "/paymentMethods", req, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Payments starts a payment.
func (a *API) Payments(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out PaymentResponse
	if err := a.post(ctx, "/payments", req, req.Reference, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentDetails submits the result of a shopper action started by a
// previous Payments call.
func (a *API) PaymentDetails(ctx context.Context, req PaymentDetailsRequest) (*PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out PaymentResponse
	if err := a.post(ctx, "/payments/details", req, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sessions creates a hosted checkout session.
func (a *API) Sessions(ctx context.Context, req CreateSessionRequest) (*CreateSessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out CreateSessionResponse
	if err := a.post(ctx, "/sessions", req, req.Reference, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Captures captures the payment identified by pspReference.
func (a *API) Captures(ctx context.Context, pspReference string, req CaptureRequest) (*CaptureResponse, error) {
	if err := validatePSPReference(pspReference); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out CaptureResponse
	if err := a.post(ctx, paymentPath(pspReference, "captures"), req, req.Reference, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refunds refunds the payment identified by pspReference.
func (a *API) Refunds(ctx context.Context, pspReference string, req RefundRequest) (*RefundResponse, error) {
	if err := validatePSPReference(pspReference); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out RefundResponse
	if err := a.post(ctx, paymentPath(pspReference, "refunds"), req, req.Reference, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancels releases the authorisation identified by pspReference.
func (a *API) Cancels(ctx context.Context, pspReference string, req CancelRequest) (*CancelResponse, error) {
	if err := validatePSPReference(pspReference); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out CancelResponse
	if err := a.post(ctx, paymentPath(pspReference, "cancels"), req, req.Reference, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reversals cancels or refunds the payment identified by
// pspReference, whichever its current state allows.
func (a *API) Reversals(ctx context.Context, pspReference string, req ReversalRequest) (*ReversalResponse, error) {
	if err := validatePSPReference(pspReference); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out ReversalResponse
	if err := a.post(ctx, paymentPath(pspReference, "reversals"), req, req.Reference, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AmountUpdates adjusts the authorised amount of the payment
// identified by pspReference.
func (a *API) AmountUpdates(ctx context.Context, pspReference string, req AmountUpdateRequest) (*AmountUpdateResponse, error) {
	if err := validatePSPReference(pspReference); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out AmountUpdateResponse
	if err := a.post(ctx, paymentPath(pspReference, "amountUpdates"), req, req.Reference, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) post(ctx context.Context, endpoint string, body any, reference string, out any) error {
	rc := core.RequestContext{
		Method:    http.MethodPost,
		URL:       a.env.CheckoutAPIURL() + checkoutVersionPath + endpoint,
		Body:      body,
		Reference: reference,
	}
	_, err := a.exec.ExecuteJSON(ctx, rc, out)
	return err
}

func paymentPath(pspReference, operation string) string {
	return "/payments/" + url.PathEscape(pspReference) + "/" + operation
}

func validatePSPReference(pspReference string) error {
	if pspReference == "" {
		return core.NewValidationError("pspReference", "must not be empty")
	}
	return nil
}
