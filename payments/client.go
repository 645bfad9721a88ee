package payments

import (
	"context"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-adyen/core"
)

const classicPaymentPath = "/pal/servlet/Payment/v68"

// API is the Classic Payments and Modifications client. It is safe
// for concurrent use when the underlying executor is.
type API struct {
	exec core.Executor
	env  core.Environment
}

// New builds a classic payments client on top of an executor.
func New(exec core.Executor, env core.Environment) (*API, error) {
	if exec == nil {
		return nil, goerrors.New("payments: executor is required", goerrors.CategoryValidation).
			WithTextCode(core.ErrorValidation)
	}
	return &API{exec: exec, env: env}, nil
}

// Authorise creates a payment authorisation hold.
func (a *API) Authorise(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return a.postResult(ctx, "/authorise", req, req.Reference)
}

// Authorise3D completes a 3D Secure 1.0 authentication.
func (a *API) Authorise3D(ctx context.Context, req PaymentRequest3D) (*PaymentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return a.postResult(ctx, "/authorise3d", req, "")
}

// Capture captures an authorised amount.
func (a *API) Capture(ctx context.Context, req CaptureRequest) (*ModificationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return a.postModification(ctx, "/capture", req)
}

// Cancel releases an authorisation hold.
func (a *API) Cancel(ctx context.Context, req CancelRequest) (*ModificationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return a.postModification(ctx, "/cancel", req)
}

// Refund returns captured funds to the shopper.
func (a *API) Refund(ctx context.Context, req RefundRequest) (*ModificationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return a.postModification(ctx, "/refund", req)
}

// CancelOrRefund cancels or refunds depending on the payment state.
func (a *API) CancelOrRefund(ctx context.Context, req CancelOrRefundRequest) (*ModificationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return a.postModification(ctx, "/cancelOrRefund", req)
}

func (a *API) postResult(ctx context.Context, endpoint string, body any, reference string) (*PaymentResult, error) {
	var out PaymentResult
	rc := core.RequestContext{
		Method:    http.MethodPost,
		URL:       a.env.ClassicAPIURL() + classicPaymentPath + endpoint,
		Body:      body,
		Reference: reference,
	}
	if _, err := a.exec.ExecuteJSON(ctx, rc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) postModification(ctx context.Context, endpoint string, body any) (*ModificationResult, error) {
	var out ModificationResult
	rc := core.RequestContext{
		Method: http.MethodPost,
		URL:    a.env.ClassicAPIURL() + classicPaymentPath + endpoint,
		Body:   body,
	}
	if _, err := a.exec.ExecuteJSON(ctx, rc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
