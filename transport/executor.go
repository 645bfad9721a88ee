package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-adyen/core"
)

const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

const errorBodyPreviewLimit = 512

// HTTPExecutor runs calls against the Adyen APIs: it injects
// credentials, encodes JSON bodies, retries transient failures with
// exponential backoff and classifies every failure into the library's
// error taxonomy.
type HTTPExecutor struct {
	config  core.Config
	client  core.HTTPDoer
	logger  core.Logger
	metrics core.MetricsRecorder
	backoff core.BackoffScheduler
	sleep   func(ctx context.Context, delay time.Duration) error

	maxResponseBodyBytes int64
}

type Option func(*HTTPExecutor)

func WithHTTPClient(client core.HTTPDoer) Option {
	return func(e *HTTPExecutor) {
		if client != nil {
			e.client = client
		}
	}
}

func WithLogger(logger core.Logger) Option {
	return func(e *HTTPExecutor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(e *HTTPExecutor) {
		if recorder != nil {
			e.metrics = recorder
		}
	}
}

func WithBackoffScheduler(scheduler core.BackoffScheduler) Option {
	return func(e *HTTPExecutor) {
		if scheduler != nil {
			e.backoff = scheduler
		}
	}
}

func WithResponseBodyLimit(limit int64) Option {
	return func(e *HTTPExecutor) {
		if limit > 0 {
			e.maxResponseBodyBytes = limit
		}
	}
}

// NewHTTPExecutor validates the configuration and assembles an
// executor. Every collaborator has a working default; options replace
// them.
func NewHTTPExecutor(cfg core.Config, options ...Option) (*HTTPExecutor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	_, logger := glog.Resolve("adyen", nil, nil)
	executor := &HTTPExecutor{
		config:               cfg,
		client:               &http.Client{Timeout: cfg.RequestTimeout()},
		logger:               logger,
		metrics:              core.NopMetricsRecorder{},
		backoff:              ExponentialBackoffScheduler{Base: cfg.BaseBackoff()},
		sleep:                waitWithContext,
		maxResponseBodyBytes: defaultResponseBodyLimit,
	}
	for _, option := range options {
		option(executor)
	}
	return executor, nil
}

// Config returns the executor's immutable configuration.
func (e *HTTPExecutor) Config() core.Config {
	if e == nil {
		return core.Config{}
	}
	return e.config
}

// Execute performs one call with the configured retry policy. Network
// failures and 5xx responses retry up to the configured budget; 4xx
// responses and encode/decode failures never retry.
func (e *HTTPExecutor) Execute(ctx context.Context, rc core.RequestContext) (core.ResponseEnvelope, error) {
	if e == nil || e.client == nil {
		return core.ResponseEnvelope{}, transportError(
			"adyen: executor requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := rc.Validate(); err != nil {
		return core.ResponseEnvelope{}, err
	}

	authHeader, authValue, err := e.config.Credentials().Apply()
	if err != nil {
		return core.ResponseEnvelope{}, err
	}

	var payload []byte
	if rc.Body != nil {
		payload, err = json.Marshal(rc.Body)
		if err != nil {
			return core.ResponseEnvelope{}, core.WrapSerializationError(
				err,
				"adyen: encode request body",
				map[string]any{"url": rc.URL},
			)
		}
	}

	requestURL, err := buildRequestURL(rc)
	if err != nil {
		return core.ResponseEnvelope{}, err
	}
	method := strings.ToUpper(strings.TrimSpace(rc.Method))

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && e.config.RequestTimeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.RequestTimeout())
		defer cancel()
	}

	maxAttempts := e.config.MaxRetries() + 1
	startedAt := time.Now().UTC()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := e.backoff.NextDelay(attempt - 1)
			e.log(ctx, "info", "adyen request retry scheduled", traceFields(rc, map[string]any{
				"method":   method,
				"url":      requestURL,
				"attempt":  attempt,
				"delay_ms": delay.Milliseconds(),
				"error":    errMessage(lastErr),
			}))
			if err := e.sleep(ctx, delay); err != nil {
				return core.ResponseEnvelope{}, transportWrapError(
					err,
					goerrors.CategoryExternal,
					"adyen: request cancelled during backoff",
					http.StatusBadGateway,
					map[string]any{
						"method":   method,
						"url":      requestURL,
						"attempts": attempt - 1,
					},
				)
			}
		}

		envelope, retryable, attemptErr := e.attempt(ctx, method, requestURL, authHeader, authValue, rc, payload, attempt)
		if attemptErr == nil {
			envelope.Attempts = attempt
			envelope.Elapsed = time.Since(startedAt)
			e.observe(ctx, method, rc, envelope.StatusCode, attempt, startedAt, nil)
			return envelope, nil
		}
		lastErr = attemptErr
		if !retryable {
			e.observe(ctx, method, rc, statusOf(attemptErr), attempt, startedAt, attemptErr)
			return core.ResponseEnvelope{}, attemptErr
		}
	}

	e.observe(ctx, method, rc, statusOf(lastErr), maxAttempts, startedAt, lastErr)
	return core.ResponseEnvelope{}, exhaustedError(lastErr, maxAttempts, time.Since(startedAt))
}

// ExecuteJSON runs Execute and decodes the response body into out.
// A nil out skips decoding.
func (e *HTTPExecutor) ExecuteJSON(ctx context.Context, rc core.RequestContext, out any) (core.ResponseEnvelope, error) {
	envelope, err := e.Execute(ctx, rc)
	if err != nil {
		return envelope, err
	}
	if out == nil || len(envelope.Body) == 0 {
		return envelope, nil
	}
	if err := json.Unmarshal(envelope.Body, out); err != nil {
		return envelope, core.WrapSerializationError(
			err,
			"adyen: decode response body",
			map[string]any{
				"url":         rc.URL,
				"status_code": envelope.StatusCode,
			},
		)
	}
	return envelope, nil
}

func (e *HTTPExecutor) attempt(
	ctx context.Context,
	method string,
	requestURL string,
	authHeader string,
	authValue string,
	rc core.RequestContext,
	payload []byte,
	attempt int,
) (core.ResponseEnvelope, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, requestURL, bytes.NewReader(payload))
	if err != nil {
		return core.ResponseEnvelope{}, false, transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"adyen: create http request",
			http.StatusBadRequest,
			map[string]any{"method": method, "url": requestURL},
		)
	}

	for key, value := range e.config.DefaultHeaders() {
		httpReq.Header.Set(key, value)
	}
	for key, value := range rc.Headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		httpReq.Header.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if len(payload) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", e.config.UserAgent())
	httpReq.Header.Set(authHeader, authValue)

	attemptStart := time.Now().UTC()
	httpRes, err := e.client.Do(httpReq)
	if err != nil {
		e.log(ctx, "error", "adyen request failed", traceFields(rc, map[string]any{
			"method":      method,
			"url":         requestURL,
			"attempt":     attempt,
			"duration_ms": time.Since(attemptStart).Milliseconds(),
			"error":       err.Error(),
		}))
		return core.ResponseEnvelope{}, true, core.WrapNetworkError(
			err,
			"adyen: execute http request",
			map[string]any{"method": method, "url": requestURL},
		)
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpRes.Body, e.maxResponseBodyBytes+1))
	if err != nil {
		return core.ResponseEnvelope{}, true, core.WrapNetworkError(
			err,
			"adyen: read response body",
			map[string]any{"method": method, "url": requestURL, "status_code": httpRes.StatusCode},
		)
	}
	if int64(len(body)) > e.maxResponseBodyBytes {
		return core.ResponseEnvelope{}, false, core.NewNetworkError(
			fmt.Sprintf("adyen: response body exceeds limit of %d bytes", e.maxResponseBodyBytes),
			map[string]any{"method": method, "url": requestURL, "status_code": httpRes.StatusCode},
		)
	}

	e.log(ctx, logLevelFor(httpRes.StatusCode), "adyen request completed", traceFields(rc, map[string]any{
		"method":      method,
		"url":         requestURL,
		"attempt":     attempt,
		"status_code": httpRes.StatusCode,
		"duration_ms": time.Since(attemptStart).Milliseconds(),
	}))

	if httpRes.StatusCode < http.StatusMultipleChoices {
		return core.ResponseEnvelope{
			StatusCode: httpRes.StatusCode,
			Headers:    flattenHeaders(httpRes.Header),
			Body:       body,
		}, false, nil
	}

	apiErr := decodeAPIError(httpRes.StatusCode, body)
	return core.ResponseEnvelope{}, apiErr.IsServerError(), core.NewAPIError(apiErr)
}

func buildRequestURL(rc core.RequestContext) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rc.URL))
	if err != nil {
		return "", transportWrapError(
			err,
			goerrors.CategoryValidation,
			"adyen: invalid request url",
			http.StatusBadRequest,
			map[string]any{"url": strings.TrimSpace(rc.URL)},
		)
	}
	query := parsed.Query()
	for key, value := range rc.Query {
		if strings.TrimSpace(key) == "" {
			continue
		}
		query.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// decodeAPIError recovers the structured error body the vendor
// returns. Unparseable bodies fall back to a preview of the raw bytes
// so the status is never lost.
func decodeAPIError(statusCode int, body []byte) *core.APIError {
	apiErr := &core.APIError{}
	if err := json.Unmarshal(body, apiErr); err == nil && strings.TrimSpace(apiErr.Message) != "" {
		if apiErr.Status == 0 {
			apiErr.Status = statusCode
		}
		return apiErr
	}
	preview := strings.TrimSpace(string(body))
	if len(preview) > errorBodyPreviewLimit {
		preview = preview[:errorBodyPreviewLimit]
	}
	if preview == "" {
		preview = http.StatusText(statusCode)
	}
	return &core.APIError{Status: statusCode, Message: preview}
}

func exhaustedError(lastErr error, attempts int, elapsed time.Duration) error {
	err := goerrors.Wrap(
		lastErr,
		goerrors.CategoryExternal,
		fmt.Sprintf("adyen: retries exhausted after %d attempts", attempts),
	).
		WithCode(statusOf(lastErr)).
		WithTextCode(textCodeOf(lastErr)).
		WithMetadata(map[string]any{
			"attempts":   attempts,
			"elapsed_ms": elapsed.Milliseconds(),
		})
	return err
}

func statusOf(err error) int {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.Code > 0 {
		return rich.Code
	}
	return http.StatusBadGateway
}

func textCodeOf(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode != "" {
		return rich.TextCode
	}
	return core.ErrorNetwork
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func traceFields(rc core.RequestContext, fields map[string]any) map[string]any {
	if rc.IdempotencyKey != "" {
		fields["idempotency_key"] = rc.IdempotencyKey
	}
	if rc.Reference != "" {
		fields["merchant_reference"] = rc.Reference
	}
	return fields
}

func logLevelFor(statusCode int) string {
	if statusCode >= http.StatusBadRequest {
		return "error"
	}
	return "info"
}

func (e *HTTPExecutor) log(ctx context.Context, level string, message string, fields map[string]any) {
	if e == nil || e.logger == nil {
		return
	}
	fields = core.RedactSensitiveMap(fields)
	logger := e.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	args := flattenFields(fields)
	switch level {
	case "error":
		logger.Error(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (e *HTTPExecutor) observe(
	ctx context.Context,
	method string,
	rc core.RequestContext,
	statusCode int,
	attempts int,
	startedAt time.Time,
	err error,
) {
	if e == nil || e.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	tags := map[string]string{
		"method":  method,
		"outcome": outcome,
		"status":  strconv.Itoa(statusCode),
	}
	e.metrics.IncCounter(ctx, "adyen.request.total", 1, tags)
	e.metrics.ObserveHistogram(ctx, "adyen.request.duration_ms", float64(time.Since(startedAt).Milliseconds()), tags)
	e.metrics.IncCounter(ctx, "adyen.request.attempts", int64(attempts), tags)
}

func flattenHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) == 0 {
			flat[key] = ""
			continue
		}
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
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
	return args
}

var _ core.Executor = (*HTTPExecutor)(nil)
