// Package metrics names and tags the metrics emitted by the review flow.
package metrics

import (
	"time"

	obserrors "github.com/jobpilot/jobreview/internal/observability/errors"
	"github.com/jobpilot/jobreview/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultDropped = "dropped"
)

// Metric names.
const (
	MetricStoreCall     = "store.call"
	MetricStoreDuration = "store.duration"
	MetricPageLoad      = "listing.page_load"
	MetricDecision      = "decision.recorded"
	MetricDecisionFail  = "decision.failed"
)

// StoreCall describes one call against the key-value store.
type StoreCall struct {
	Operation string
	Duration  time.Duration
	Err       error
}

// EmitStoreCall records the outcome and latency of a store call.
func EmitStoreCall(sink statsd.Sink, in StoreCall) {
	if sink == nil {
		return
	}
	tags := map[string]string{"operation": in.Operation, "result": resultOf(in.Err)}
	if class := obserrors.Classify(in.Err); class != "" {
		tags["error_class"] = class
	}
	sink.Count(MetricStoreCall, 1, tags)
	if in.Duration > 0 {
		sink.Timing(MetricStoreDuration, in.Duration, CloneTags(tags))
	}
}

// EmitPageLoad records a list view load. kind is "initial", "next" or "prev".
func EmitPageLoad(sink statsd.Sink, kind, result string) {
	if sink == nil {
		return
	}
	sink.Count(MetricPageLoad, 1, map[string]string{"kind": kind, "result": result})
}

// EmitDecision records a decision attempt for a job ad.
func EmitDecision(sink statsd.Sink, decision string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{"decision": decision}
	if err == nil {
		sink.Count(MetricDecision, 1, tags)
		return
	}
	if class := obserrors.Classify(err); class != "" {
		tags["error_class"] = class
	}
	sink.Count(MetricDecisionFail, 1, tags)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
