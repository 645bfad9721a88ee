package webhooks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-adyen/core"
)

// Handler processes one notification item.
type Handler interface {
	Handle(ctx context.Context, item NotificationRequestItem) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, item NotificationRequestItem) error

func (f HandlerFunc) Handle(ctx context.Context, item NotificationRequestItem) error {
	return f(ctx, item)
}

// DispatchStats summarizes one Dispatch run.
type DispatchStats struct {
	Delivered  int
	Duplicates int
	Rejected   int
	Failed     int
	Skipped    int
}

// Dispatcher routes notification items to handlers registered per
// event code. When a validator is set, items with missing or invalid
// signatures are rejected and never reach a handler. When a claim
// store is set, redelivered items are acknowledged without invoking
// the handler twice.
type Dispatcher struct {
	Validator *HMACValidator
	Store     ClaimStore
	KeyTTL    time.Duration

	logger   core.Logger
	mu       sync.RWMutex
	handlers map[string]Handler
	fallback Handler
}

type DispatcherOption func(*Dispatcher)

func WithDispatcherLogger(logger core.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func WithClaimStore(store ClaimStore) DispatcherOption {
	return func(d *Dispatcher) {
		d.Store = store
	}
}

func WithClaimTTL(ttl time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if ttl > 0 {
			d.KeyTTL = ttl
		}
	}
}

func NewDispatcher(validator *HMACValidator, options ...DispatcherOption) *Dispatcher {
	_, logger := glog.Resolve("adyen-webhooks", nil, nil)
	dispatcher := &Dispatcher{
		Validator: validator,
		KeyTTL:    defaultClaimLease,
		logger:    logger,
		handlers:  map[string]Handler{},
	}
	for _, option := range options {
		option(dispatcher)
	}
	return dispatcher
}

// Register installs a handler for an event code. Registering the same
// code twice is a programming error and is rejected.
func (d *Dispatcher) Register(eventCode string, handler Handler) error {
	if d == nil {
		return core.NewValidationError("dispatcher", "dispatcher is nil")
	}
	eventCode = strings.ToUpper(strings.TrimSpace(eventCode))
	if eventCode == "" {
		return core.NewValidationError("event_code", "event code is required")
	}
	if handler == nil {
		return core.NewValidationError("handler", "handler is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.handlers[eventCode]; exists {
		return core.NewValidationError("event_code", fmt.Sprintf("handler already registered for %s", eventCode))
	}
	d.handlers[eventCode] = handler
	return nil
}

// RegisterFallback installs the handler for event codes with no
// dedicated handler.
func (d *Dispatcher) RegisterFallback(handler Handler) error {
	if d == nil {
		return core.NewValidationError("dispatcher", "dispatcher is nil")
	}
	if handler == nil {
		return core.NewValidationError("handler", "handler is nil")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fallback = handler
	return nil
}

// EventCodes returns the registered event codes sorted.
func (d *Dispatcher) EventCodes() []string {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	codes := make([]string, 0, len(d.handlers))
	for code := range d.handlers {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DispatchPayload parses raw bytes and dispatches the result.
func (d *Dispatcher) DispatchPayload(ctx context.Context, payload []byte) (DispatchStats, error) {
	webhook, err := Parse(payload)
	if err != nil {
		return DispatchStats{}, err
	}
	return d.Dispatch(ctx, webhook)
}

// Dispatch processes every item in arrival order. A bad item never
// aborts the run: invalid signatures are counted as rejected,
// handler errors as failed, and the joined handler errors are
// returned alongside the stats.
func (d *Dispatcher) Dispatch(ctx context.Context, webhook *Webhook) (DispatchStats, error) {
	if d == nil {
		return DispatchStats{}, core.NewValidationError("dispatcher", "dispatcher is nil")
	}
	if webhook == nil {
		return DispatchStats{}, core.NewValidationError("webhook", "webhook is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	stats := DispatchStats{}
	var failures []error
	for _, item := range webhook.Items() {
		if err := item.Validate(); err != nil {
			stats.Rejected++
			d.log(ctx, "error", "webhook item rejected", map[string]any{
				"event_code": item.EventCode,
				"error":      err.Error(),
			})
			continue
		}
		if d.Validator != nil && !d.Validator.ValidateNotification(item) {
			stats.Rejected++
			d.log(ctx, "error", "webhook signature verification failed", map[string]any{
				"event_code":       item.EventCode,
				"psp_reference":    item.PSPReference,
				"merchant_account": item.MerchantAccountCode,
			})
			continue
		}

		claimID := ""
		if d.Store != nil {
			var accepted bool
			var err error
			claimID, accepted, err = d.Store.Claim(ctx, item.DeliveryKey(), d.keyTTL())
			if err != nil {
				stats.Failed++
				failures = append(failures, err)
				continue
			}
			if !accepted {
				stats.Duplicates++
				d.log(ctx, "info", "webhook delivery deduped", map[string]any{
					"event_code":    item.EventCode,
					"psp_reference": item.PSPReference,
				})
				continue
			}
		}

		handler := d.handlerFor(item.EventCode)
		if handler == nil {
			stats.Skipped++
			if claimID != "" {
				if err := d.Store.Complete(ctx, claimID); err != nil {
					failures = append(failures, err)
				}
			}
			d.log(ctx, "info", "webhook event has no handler", map[string]any{
				"event_code":    item.EventCode,
				"psp_reference": item.PSPReference,
			})
			continue
		}

		if err := handler.Handle(ctx, item); err != nil {
			stats.Failed++
			failures = append(failures, fmt.Errorf("handle %s %s: %w", item.EventCode, item.PSPReference, err))
			if claimID != "" {
				if failErr := d.Store.Fail(ctx, claimID, err, time.Time{}); failErr != nil {
					failures = append(failures, failErr)
				}
			}
			d.log(ctx, "error", "webhook handler failed", map[string]any{
				"event_code":    item.EventCode,
				"psp_reference": item.PSPReference,
				"error":         err.Error(),
			})
			continue
		}

		if claimID != "" {
			if err := d.Store.Complete(ctx, claimID); err != nil {
				failures = append(failures, err)
			}
		}
		stats.Delivered++
		d.log(ctx, "info", "webhook delivered", map[string]any{
			"event_code":    item.EventCode,
			"psp_reference": item.PSPReference,
			"success":       item.IsSuccess(),
		})
	}

	return stats, errors.Join(failures...)
}

func (d *Dispatcher) handlerFor(eventCode string) Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if handler, ok := d.handlers[strings.ToUpper(strings.TrimSpace(eventCode))]; ok {
		return handler
	}
	return d.fallback
}

func (d *Dispatcher) keyTTL() time.Duration {
	if d != nil && d.KeyTTL > 0 {
		return d.KeyTTL
	}
	return defaultClaimLease
}

func (d *Dispatcher) log(ctx context.Context, level string, message string, fields map[string]any) {
	if d == nil || d.logger == nil {
		return
	}
	fields = core.RedactSensitiveMap(fields)
	logger := d.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	if level == "error" {
		logger.Error(message, args...)
		return
	}
	logger.Info(message, args...)
}
