package webhooks

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-adyen/core"
)

// Event codes Adyen sends in standard notifications.
const (
	EventCodeACHNotificationOfChange  = "ACH_NOTIFICATION_OF_CHANGE"
	EventCodeAuthorisation            = "AUTHORISATION"
	EventCodeAuthorisationAdjustment  = "AUTHORISATION_ADJUSTMENT"
	EventCodeAutorescue               = "AUTORESCUE"
	EventCodeAutorescueNextAttempt    = "AUTORESCUE_NEXT_ATTEMPT"
	EventCodeCancellation             = "CANCELLATION"
	EventCodeCancelAutorescue         = "CANCEL_AUTORESCUE"
	EventCodeCancelOrRefund           = "CANCEL_OR_REFUND"
	EventCodeCapture                  = "CAPTURE"
	EventCodeCaptureFailed            = "CAPTURE_FAILED"
	EventCodeChargeback               = "CHARGEBACK"
	EventCodeChargebackReversed       = "CHARGEBACK_REVERSED"
	EventCodeExpire                   = "EXPIRE"
	EventCodeIssuerComments           = "ISSUER_COMMENTS"
	EventCodeHandledExternally        = "HANDLED_EXTERNALLY"
	EventCodeManualReviewAccept       = "MANUAL_REVIEW_ACCEPT"
	EventCodeManualReviewReject       = "MANUAL_REVIEW_REJECT"
	EventCodeNotificationOfChargeback = "NOTIFICATION_OF_CHARGEBACK"
	EventCodeNotificationOfFraud      = "NOTIFICATION_OF_FRAUD"
	EventCodeOfferClosed              = "OFFER_CLOSED"
	EventCodePaidoutReversed          = "PAIDOUT_REVERSED"
	EventCodePayoutDecline            = "PAYOUT_DECLINE"
	EventCodePayoutExpire             = "PAYOUT_EXPIRE"
	EventCodePayoutThirdparty         = "PAYOUT_THIRDPARTY"
	EventCodePostponedRefund          = "POSTPONED_REFUND"
	EventCodePrearbitrationLost       = "PREARBITRATION_LOST"
	EventCodePrearbitrationWon        = "PREARBITRATION_WON"
	EventCodeRecurringContract        = "RECURRING_CONTRACT"
	EventCodeRefund                   = "REFUND"
	EventCodeRefundFailed             = "REFUND_FAILED"
	EventCodeRefundWithData           = "REFUND_WITH_DATA"
	EventCodeRefundedReversed         = "REFUNDED_REVERSED"
	EventCodeReportAvailable          = "REPORT_AVAILABLE"
	EventCodeRequestForInformation    = "REQUEST_FOR_INFORMATION"
	EventCodeSecondChargeback         = "SECOND_CHARGEBACK"
	EventCodeTechnicalCancel          = "TECHNICAL_CANCEL"
	EventCodeVoidPendingRefund        = "VOID_PENDING_REFUND"
	EventCodeOrderClosed              = "ORDER_CLOSED"
	EventCodeOrderOpened              = "ORDER_OPENED"
)

// HMACSignatureKey is the additionalData entry carrying the item
// signature.
const HMACSignatureKey = "hmacSignature"

// Webhook is the envelope Adyen posts to a notification endpoint. The
// live flag is a string "true"/"false" on the wire.
type Webhook struct {
	Live              string             `json:"live"`
	NotificationItems []NotificationItem `json:"notificationItems"`
}

// NotificationItem wraps a single request item. The wire field keeps
// Adyen's PascalCase name.
type NotificationItem struct {
	NotificationRequestItem NotificationRequestItem `json:"NotificationRequestItem"`
}

// NotificationRequestItem is one event inside a webhook.
type NotificationRequestItem struct {
	AdditionalData      map[string]any `json:"additionalData,omitempty"`
	Amount              core.Amount    `json:"amount"`
	EventCode           string         `json:"eventCode"`
	EventDate           *time.Time     `json:"eventDate,omitempty"`
	MerchantAccountCode string         `json:"merchantAccountCode"`
	MerchantReference   string         `json:"merchantReference"`
	Operations          []string       `json:"operations,omitempty"`
	OriginalReference   string         `json:"originalReference,omitempty"`
	PaymentMethod       string         `json:"paymentMethod,omitempty"`
	Reason              string         `json:"reason,omitempty"`
	PSPReference        string         `json:"pspReference"`
	Success             string         `json:"success"`
}

// IsLive reports whether the webhook came from the live environment.
func (w *Webhook) IsLive() bool {
	return w != nil && w.Live == "true"
}

// IsTest reports whether the webhook came from the test environment.
func (w *Webhook) IsTest() bool {
	return w != nil && w.Live == "false"
}

// Items returns the request items in arrival order.
func (w *Webhook) Items() []NotificationRequestItem {
	if w == nil {
		return nil
	}
	items := make([]NotificationRequestItem, 0, len(w.NotificationItems))
	for _, item := range w.NotificationItems {
		items = append(items, item.NotificationRequestItem)
	}
	return items
}

// IsSuccess reports whether the item describes a successful operation.
func (i NotificationRequestItem) IsSuccess() bool {
	return i.Success == "true"
}

// IsFailure reports whether the item describes a failed operation.
func (i NotificationRequestItem) IsFailure() bool {
	return i.Success == "false"
}

// HMACSignature returns the signature embedded in additionalData, or
// an empty string when absent.
func (i NotificationRequestItem) HMACSignature() string {
	value, ok := i.AdditionalData[HMACSignatureKey]
	if !ok {
		return ""
	}
	signature, ok := value.(string)
	if !ok {
		return ""
	}
	return signature
}

// AdditionalDataValue returns the raw additionalData entry for key.
func (i NotificationRequestItem) AdditionalDataValue(key string) (any, bool) {
	value, ok := i.AdditionalData[key]
	return value, ok
}

// DeliveryKey identifies the delivery for duplicate detection. Adyen
// can redeliver the same event; the merchant account, psp reference
// and event code together name it.
func (i NotificationRequestItem) DeliveryKey() string {
	return fmt.Sprintf("%s:%s:%s", i.MerchantAccountCode, i.PSPReference, i.EventCode)
}

// Validate checks the fields every standard notification must carry.
func (i NotificationRequestItem) Validate() error {
	if strings.TrimSpace(i.PSPReference) == "" {
		return core.NewValidationError("pspReference", "psp reference is required")
	}
	if strings.TrimSpace(i.EventCode) == "" {
		return core.NewValidationError("eventCode", "event code is required")
	}
	if strings.TrimSpace(i.MerchantAccountCode) == "" {
		return core.NewValidationError("merchantAccountCode", "merchant account code is required")
	}
	return nil
}
