package payments

import (
	"github.com/goliatone/go-adyen/core"
)

// Result codes returned by the classic authorisation endpoints.
const (
	ResultAuthorised      = "Authorised"
	ResultRefused         = "Refused"
	ResultCancelled       = "Cancelled"
	ResultError           = "Error"
	ResultRedirectShopper = "RedirectShopper"
	ResultReceived        = "Received"
	ResultPending         = "Pending"
)

// Modification acknowledgement strings. The classic API confirms a
// modification asynchronously and echoes one of these in the response.
const (
	ResponseCaptureReceived        = "[capture-received]"
	ResponseCancelReceived         = "[cancel-received]"
	ResponseRefundReceived         = "[refund-received]"
	ResponseCancelOrRefundReceived = "[cancelOrRefund-received]"
)

// Recurring contract types.
const (
	ContractOneClick          = "ONECLICK"
	ContractRecurring         = "RECURRING"
	ContractOneClickRecurring = "ONECLICK,RECURRING"
)

// Card holds raw card details for a classic authorisation.
type Card struct {
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVC         string `json:"cvc"`
	HolderName  string `json:"holderName,omitempty"`
}

// Recurring configures tokenised payments on an authorisation.
type Recurring struct {
	Contract     string `json:"contract"`
	TokenService string `json:"tokenService,omitempty"`
}

// BrowserInfo carries the shopper's browser fingerprint for 3D Secure
// device checks.
type BrowserInfo struct {
	AcceptHeader      string `json:"acceptHeader"`
	ColorDepth        int    `json:"colorDepth"`
	JavaEnabled       bool   `json:"javaEnabled"`
	JavaScriptEnabled bool   `json:"javaScriptEnabled"`
	Language          string `json:"language"`
	ScreenHeight      int    `json:"screenHeight"`
	ScreenWidth       int    `json:"screenWidth"`
	TimeZoneOffset    int    `json:"timeZoneOffset"`
	UserAgent         string `json:"userAgent"`
}

// Address is a billing or delivery address.
type Address struct {
	Street            string `json:"street,omitempty"`
	HouseNumberOrName string `json:"houseNumberOrName,omitempty"`
	City              string `json:"city,omitempty"`
	PostalCode        string `json:"postalCode,omitempty"`
	StateOrProvince   string `json:"stateOrProvince,omitempty"`
	Country           string `json:"country,omitempty"`
}

// PaymentRequest creates an authorisation hold against a card or a
// stored payment method.
type PaymentRequest struct {
	Amount          core.Amount `json:"amount"`
	MerchantAccount string      `json:"merchantAccount"`
	Reference       string      `json:"reference"`

	Card *Card `json:"card,omitempty"`
	// SelectedRecurringDetailReference replaces Card when paying with
	// a previously stored method.
	SelectedRecurringDetailReference string `json:"selectedRecurringDetailReference,omitempty"`

	ShopperReference string       `json:"shopperReference,omitempty"`
	ShopperEmail     string       `json:"shopperEmail,omitempty"`
	ShopperIP        string       `json:"shopperIP,omitempty"`
	ShopperLocale    string       `json:"shopperLocale,omitempty"`
	CountryCode      string       `json:"countryCode,omitempty"`
	Channel          string       `json:"channel,omitempty"`
	Recurring        *Recurring   `json:"recurring,omitempty"`
	ReturnURL        string       `json:"returnUrl,omitempty"`
	BrowserInfo      *BrowserInfo `json:"browserInfo,omitempty"`
	BillingAddress   *Address     `json:"billingAddress,omitempty"`
	DeliveryAddress  *Address     `json:"deliveryAddress,omitempty"`
	SessionValidity  string       `json:"sessionValidity,omitempty"`

	AdditionalData map[string]string `json:"additionalData,omitempty"`
}

// Validate checks the fields the classic API rejects with a 422 so
// callers fail before the network round trip.
func (r PaymentRequest) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	if r.Reference == "" {
		return core.NewValidationError("reference", "must not be empty")
	}
	if r.Card == nil && r.SelectedRecurringDetailReference == "" {
		return core.NewValidationError("card", "either card or selectedRecurringDetailReference is required")
	}
	return nil
}

// PaymentRequest3D completes a 3D Secure 1.0 flow using the values
// posted back by the issuer.
type PaymentRequest3D struct {
	MerchantAccount string       `json:"merchantAccount"`
	MD              string       `json:"md"`
	PaResponse      string       `json:"paResponse"`
	BrowserInfo     *BrowserInfo `json:"browserInfo,omitempty"`
	ShopperIP       string       `json:"shopperIP,omitempty"`
}

func (r PaymentRequest3D) Validate() error {
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	if r.MD == "" {
		return core.NewValidationError("md", "must not be empty")
	}
	if r.PaResponse == "" {
		return core.NewValidationError("paResponse", "must not be empty")
	}
	return nil
}

// FraudResult reports the risk score attached to an authorisation.
type FraudResult struct {
	AccountScore int `json:"accountScore"`
}

// PaymentResult is the outcome of an authorisation attempt.
type PaymentResult struct {
	ResultCode        string            `json:"resultCode"`
	PSPReference      string            `json:"pspReference,omitempty"`
	MerchantReference string            `json:"merchantReference,omitempty"`
	AuthCode          string            `json:"authCode,omitempty"`
	RefusalReason     string            `json:"refusalReason,omitempty"`
	FraudResult       *FraudResult      `json:"fraudResult,omitempty"`
	AdditionalData    map[string]string `json:"additionalData,omitempty"`

	// 3D Secure redirect fields, set when ResultCode is RedirectShopper.
	IssuerURL string `json:"issuerUrl,omitempty"`
	MD        string `json:"md,omitempty"`
	PaRequest string `json:"paRequest,omitempty"`
}

// IsAuthorised reports whether the payment was approved.
func (r PaymentResult) IsAuthorised() bool { return r.ResultCode == ResultAuthorised }

// RequiresRedirect reports whether the shopper must be sent to the
// issuer for 3D Secure authentication.
func (r PaymentResult) RequiresRedirect() bool { return r.ResultCode == ResultRedirectShopper }

// CaptureRequest captures an authorised amount, in full or in part.
type CaptureRequest struct {
	MerchantAccount    string            `json:"merchantAccount"`
	ModificationAmount core.Amount       `json:"modificationAmount"`
	OriginalReference  string            `json:"originalReference"`
	Reference          string            `json:"reference,omitempty"`
	AdditionalData     map[string]string `json:"additionalData,omitempty"`
}

func (r CaptureRequest) Validate() error {
	if err := r.ModificationAmount.Validate(); err != nil {
		return err
	}
	return validateModification(r.MerchantAccount, r.OriginalReference)
}

// CancelRequest releases an authorisation hold.
type CancelRequest struct {
	MerchantAccount   string            `json:"merchantAccount"`
	OriginalReference string            `json:"originalReference"`
	Reference         string            `json:"reference,omitempty"`
	AdditionalData    map[string]string `json:"additionalData,omitempty"`
}

func (r CancelRequest) Validate() error {
	return validateModification(r.MerchantAccount, r.OriginalReference)
}

// RefundRequest returns captured funds to the shopper.
type RefundRequest struct {
	MerchantAccount    string            `json:"merchantAccount"`
	ModificationAmount core.Amount       `json:"modificationAmount"`
	OriginalReference  string            `json:"originalReference"`
	Reference          string            `json:"reference,omitempty"`
	AdditionalData     map[string]string `json:"additionalData,omitempty"`
}

func (r RefundRequest) Validate() error {
	if err := r.ModificationAmount.Validate(); err != nil {
		return err
	}
	return validateModification(r.MerchantAccount, r.OriginalReference)
}

// CancelOrRefundRequest cancels when the payment is still an
// authorisation and refunds when it was already captured.
type CancelOrRefundRequest struct {
	MerchantAccount   string            `json:"merchantAccount"`
	OriginalReference string            `json:"originalReference"`
	Reference         string            `json:"reference,omitempty"`
	AdditionalData    map[string]string `json:"additionalData,omitempty"`
}

func (r CancelOrRefundRequest) Validate() error {
	return validateModification(r.MerchantAccount, r.OriginalReference)
}

func validateModification(merchantAccount, originalReference string) error {
	if merchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	if originalReference == "" {
		return core.NewValidationError("originalReference", "must not be empty")
	}
	return nil
}

// ModificationResult acknowledges an asynchronous modification. The
// final outcome arrives later as a webhook notification.
type ModificationResult struct {
	PSPReference   string            `json:"pspReference"`
	Response       string            `json:"response"`
	AdditionalData map[string]string `json:"additionalData,omitempty"`
}
