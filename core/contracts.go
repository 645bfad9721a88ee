package core

import (
	"context"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// HTTPDoer is the seam between the executor and the wire. *http.Client
// satisfies it; tests inject fakes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Executor runs one call described by a RequestContext, applying
// authentication, retries and error classification.
type Executor interface {
	Execute(ctx context.Context, rc RequestContext) (ResponseEnvelope, error)
	ExecuteJSON(ctx context.Context, rc RequestContext, out any) (ResponseEnvelope, error)
}

// BackoffScheduler yields the delay before a given retry attempt.
// Attempt numbering starts at 1 for the first retry.
type BackoffScheduler interface {
	NextDelay(attempt int) time.Duration
}

// MetricsRecorder receives call counters and latency observations.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

var _ MetricsRecorder = NopMetricsRecorder{}
