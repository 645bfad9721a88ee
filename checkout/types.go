package checkout

import (
	"github.com/goliatone/go-adyen/core"
)

// Result codes returned by /payments and /payments/details.
const (
	ResultAuthorised       = "Authorised"
	ResultRefused          = "Refused"
	ResultRedirectShopper  = "RedirectShopper"
	ResultIdentifyShopper  = "IdentifyShopper"
	ResultChallengeShopper = "ChallengeShopper"
	ResultPending          = "Pending"
	ResultCancelled        = "Cancelled"
	ResultError            = "Error"
	ResultReceived         = "Received"
)

// Action types a PaymentResponse can ask the caller to perform.
const (
	ActionRedirect = "redirect"
	ActionThreeDS2 = "threeDS2"
	ActionQRCode   = "qrCode"
)

// Status reported by the asynchronous modification endpoints.
const StatusReceived = "received"

// Sales channels.
const (
	ChannelWeb     = "Web"
	ChannelIOS     = "iOS"
	ChannelAndroid = "Android"
)

// PaymentMethodDetails identifies how the shopper pays. The "type"
// key selects the method; remaining keys are method specific. Use
// the constructors for the common methods and build the map directly
// for anything else.
type PaymentMethodDetails map[string]any

// CardDetails pays with raw card data (type "scheme").
func CardDetails(number, expiryMonth, expiryYear, cvc, holderName string) PaymentMethodDetails {
	details := PaymentMethodDetails{
		"type":        "scheme",
		"number":      number,
		"expiryMonth": expiryMonth,
		"expiryYear":  expiryYear,
		"cvc":         cvc,
	}
	if holderName != "" {
		details["holderName"] = holderName
	}
	return details
}

// IdealDetails pays through the given iDEAL issuer.
func IdealDetails(issuer string) PaymentMethodDetails {
	return PaymentMethodDetails{"type": "ideal", "issuer": issuer}
}

// PayPalDetails pays with PayPal.
func PayPalDetails() PaymentMethodDetails {
	return PaymentMethodDetails{"type": "paypal"}
}

// GooglePayDetails pays with a Google Pay token.
func GooglePayDetails(token string) PaymentMethodDetails {
	return PaymentMethodDetails{"type": "googlepay", "googlePayToken": token}
}

// ApplePayDetails pays with an Apple Pay token.
func ApplePayDetails(token string) PaymentMethodDetails {
	return PaymentMethodDetails{"type": "applepay", "applePayToken": token}
}

// Type returns the payment method type, if set.
func (d PaymentMethodDetails) Type() string {
	t, _ := d["type"].(string)
	return t
}

// BrowserInfo carries the shopper's browser fingerprint for native
// 3D Secure 2 flows.
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

// PaymentMethodsRequest asks which payment methods are available for
// a merchant, amount, and shopper country.
type PaymentMethodsRequest struct {
	MerchantAccount    string            `json:"merchantAccount"`
	Amount             *core.Amount      `json:"amount,omitempty"`
	CountryCode        string            `json:"countryCode,omitempty"`
	ShopperLocale      string            `json:"shopperLocale,omitempty"`
	Channel            string            `json:"channel,omitempty"`
	ShopperReference   string            `json:"shopperReference,omitempty"`
	StorePaymentMethod *bool             `json:"storePaymentMethod,omitempty"`
	AdditionalData     map[string]string `json:"additionalData,omitempty"`
}

func (r PaymentMethodsRequest) Validate() error {
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	if r.Amount != nil {
		return r.Amount.Validate()
	}
	return nil
}

// PaymentMethod describes one available payment method.
type PaymentMethod struct {
	Type              string         `json:"type"`
	Name              string         `json:"name"`
	Brands            []string       `json:"brands,omitempty"`
	Configuration     map[string]any `json:"configuration,omitempty"`
	FundingSource     string         `json:"fundingSource,omitempty"`
	SupportsRecurring bool           `json:"supportsRecurring,omitempty"`
}

// StoredPaymentMethod describes a tokenised method saved for a
// shopper reference.
type StoredPaymentMethod struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	LastFour    string `json:"lastFour,omitempty"`
	ExpiryMonth string `json:"expiryMonth,omitempty"`
	ExpiryYear  string `json:"expiryYear,omitempty"`
}

// PaymentMethodsResponse lists available and stored methods.
type PaymentMethodsResponse struct {
	PaymentMethods       []PaymentMethod       `json:"paymentMethods"`
	StoredPaymentMethods []StoredPaymentMethod `json:"storedPaymentMethods,omitempty"`
}

// PaymentRequest starts a payment through /payments.
type PaymentRequest struct {
	Amount          core.Amount          `json:"amount"`
	MerchantAccount string               `json:"merchantAccount"`
	Reference       string               `json:"reference"`
	ReturnURL       string               `json:"returnUrl"`
	PaymentMethod   PaymentMethodDetails `json:"paymentMethod,omitempty"`

	Channel            string            `json:"channel,omitempty"`
	Origin             string            `json:"origin,omitempty"`
	CountryCode        string            `json:"countryCode,omitempty"`
	ShopperLocale      string            `json:"shopperLocale,omitempty"`
	ShopperReference   string            `json:"shopperReference,omitempty"`
	ShopperEmail       string            `json:"shopperEmail,omitempty"`
	StorePaymentMethod *bool             `json:"storePaymentMethod,omitempty"`
	BrowserInfo        *BrowserInfo      `json:"browserInfo,omitempty"`
	BillingAddress     *Address          `json:"billingAddress,omitempty"`
	DeliveryAddress    *Address          `json:"deliveryAddress,omitempty"`
	AdditionalData     map[string]string `json:"additionalData,omitempty"`
}

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
	if r.ReturnURL == "" {
		return core.NewValidationError("returnUrl", "must not be empty")
	}
	if len(r.PaymentMethod) == 0 {
		return core.NewValidationError("paymentMethod", "must not be empty")
	}
	return nil
}

// PaymentAction tells the caller what to do next when the payment is
// not final. Type selects which of the remaining fields apply.
type PaymentAction struct {
	Type string `json:"type"`

	// redirect
	URL    string            `json:"url,omitempty"`
	Method string            `json:"method,omitempty"`
	Data   map[string]string `json:"data,omitempty"`

	// threeDS2
	Token              string            `json:"token,omitempty"`
	AuthenticationData map[string]string `json:"authenticationData,omitempty"`

	// qrCode
	QRCodeData string `json:"qrCodeData,omitempty"`
}

// FraudCheckResult is one rule outcome within a FraudResult.
type FraudCheckResult struct {
	Name         string `json:"name"`
	CheckResult  string `json:"checkResult"`
	AccountScore int    `json:"accountScore,omitempty"`
}

// FraudResult reports the aggregated risk score for a payment.
type FraudResult struct {
	AccountScore int                `json:"accountScore"`
	Results      []FraudCheckResult `json:"results,omitempty"`
}

// PaymentResponse is the outcome of /payments or /payments/details.
type PaymentResponse struct {
	ResultCode        string            `json:"resultCode"`
	PSPReference      string            `json:"pspReference,omitempty"`
	Action            *PaymentAction    `json:"action,omitempty"`
	AdditionalData    map[string]string `json:"additionalData,omitempty"`
	MerchantReference string            `json:"merchantReference,omitempty"`
	FraudResult       *FraudResult      `json:"fraudResult,omitempty"`
	RefusalReason     string            `json:"refusalReason,omitempty"`
}

// IsAuthorised reports whether the payment was approved.
func (r PaymentResponse) IsAuthorised() bool { return r.ResultCode == ResultAuthorised }

// RequiresAction reports whether the caller must perform the
// attached action before the payment can complete.
func (r PaymentResponse) RequiresAction() bool { return r.Action != nil }

// PaymentDetailsRequest submits the outcome of a shopper action
// (redirect result, 3DS challenge) to /payments/details.
type PaymentDetailsRequest struct {
	Details     map[string]string `json:"details"`
	PaymentData string            `json:"paymentData,omitempty"`
}

func (r PaymentDetailsRequest) Validate() error {
	if len(r.Details) == 0 {
		return core.NewValidationError("details", "must not be empty")
	}
	return nil
}

// LineItem is one order line on a hosted session.
type LineItem struct {
	ID                 string       `json:"id,omitempty"`
	Description        string       `json:"description"`
	Quantity           int          `json:"quantity"`
	AmountIncludingTax core.Amount  `json:"amountIncludingTax"`
	AmountExcludingTax *core.Amount `json:"amountExcludingTax,omitempty"`
	TaxAmount          *core.Amount `json:"taxAmount,omitempty"`
	TaxPercentage      int          `json:"taxPercentage,omitempty"`
	ItemCategory       string       `json:"itemCategory,omitempty"`
}

// CreateSessionRequest starts a hosted checkout session.
type CreateSessionRequest struct {
	Amount          core.Amount `json:"amount"`
	MerchantAccount string      `json:"merchantAccount"`
	Reference       string      `json:"reference"`
	ReturnURL       string      `json:"returnUrl"`

	Channel            string            `json:"channel,omitempty"`
	CountryCode        string            `json:"countryCode,omitempty"`
	ShopperLocale      string            `json:"shopperLocale,omitempty"`
	ShopperReference   string            `json:"shopperReference,omitempty"`
	ShopperEmail       string            `json:"shopperEmail,omitempty"`
	StorePaymentMethod *bool             `json:"storePaymentMethod,omitempty"`
	BillingAddress     *Address          `json:"billingAddress,omitempty"`
	DeliveryAddress    *Address          `json:"deliveryAddress,omitempty"`
	LineItems          []LineItem        `json:"lineItems,omitempty"`
	AdditionalData     map[string]string `json:"additionalData,omitempty"`
	ExpiresAt          string            `json:"expiresAt,omitempty"`
}

func (r CreateSessionRequest) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	if r.Reference == "" {
		return core.NewValidationError("reference", "must not be empty")
	}
	if r.ReturnURL == "" {
		return core.NewValidationError("returnUrl", "must not be empty")
	}
	return nil
}

// CreateSessionResponse carries the session handle for the drop-in
// or hosted page.
type CreateSessionResponse struct {
	ID              string      `json:"id"`
	SessionData     string      `json:"sessionData"`
	URL             string      `json:"url,omitempty"`
	ExpiresAt       string      `json:"expiresAt,omitempty"`
	Amount          core.Amount `json:"amount"`
	MerchantAccount string      `json:"merchantAccount"`
	Reference       string      `json:"reference"`
	ReturnURL       string      `json:"returnUrl"`
	CountryCode     string      `json:"countryCode,omitempty"`
}

// CaptureRequest captures an authorised checkout payment.
type CaptureRequest struct {
	MerchantAccount string      `json:"merchantAccount"`
	Amount          core.Amount `json:"amount"`
	Reference       string      `json:"reference,omitempty"`
}

func (r CaptureRequest) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	return nil
}

// CaptureResponse acknowledges a capture request.
type CaptureResponse struct {
	PSPReference    string      `json:"pspReference"`
	Status          string      `json:"status"`
	MerchantAccount string      `json:"merchantAccount"`
	Amount          core.Amount `json:"amount"`
}

// RefundRequest refunds a captured checkout payment.
type RefundRequest struct {
	MerchantAccount string      `json:"merchantAccount"`
	Amount          core.Amount `json:"amount"`
	Reference       string      `json:"reference,omitempty"`
}

func (r RefundRequest) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	return nil
}

// RefundResponse acknowledges a refund request.
type RefundResponse struct {
	PSPReference    string      `json:"pspReference"`
	Status          string      `json:"status"`
	MerchantAccount string      `json:"merchantAccount"`
	Amount          core.Amount `json:"amount"`
}

// CancelRequest releases an authorisation that was not captured.
type CancelRequest struct {
	MerchantAccount string `json:"merchantAccount"`
	Reference       string `json:"reference,omitempty"`
}

func (r CancelRequest) Validate() error {
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	return nil
}

// CancelResponse acknowledges a cancel request.
type CancelResponse struct {
	PSPReference    string `json:"pspReference"`
	Status          string `json:"status"`
	MerchantAccount string `json:"merchantAccount"`
}

// ReversalRequest cancels or refunds a payment in whichever state it
// is in.
type ReversalRequest struct {
	MerchantAccount string `json:"merchantAccount"`
	Reference       string `json:"reference,omitempty"`
}

func (r ReversalRequest) Validate() error {
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	return nil
}

// ReversalResponse acknowledges a reversal request.
type ReversalResponse struct {
	PSPReference    string `json:"pspReference"`
	Status          string `json:"status"`
	MerchantAccount string `json:"merchantAccount"`
}

// AmountUpdateRequest changes the authorised amount before capture.
type AmountUpdateRequest struct {
	MerchantAccount string      `json:"merchantAccount"`
	Amount          core.Amount `json:"amount"`
	Reference       string      `json:"reference,omitempty"`
}

func (r AmountUpdateRequest) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if r.MerchantAccount == "" {
		return core.NewValidationError("merchantAccount", "must not be empty")
	}
	return nil
}

// AmountUpdateResponse acknowledges an amount update request.
type AmountUpdateResponse struct {
	PSPReference    string      `json:"pspReference"`
	Status          string      `json:"status"`
	MerchantAccount string      `json:"merchantAccount"`
	Amount          core.Amount `json:"amount"`
}
