package middleware

import (
	"context"

	servertiming "github.com/mitchellh/go-server-timing"
)

// Timing is a running Server-Timing metric.
type Timing struct {
	metric *servertiming.Metric
}

// Stop ends the metric. It is a no-op when timing is not enabled.
func (t *Timing) Stop() {
	if t != nil && t.metric != nil {
		t.metric.Stop()
	}
}

// StartTiming starts a Server-Timing metric named name on the request in
// ctx. Requests that did not pass through servertiming.Middleware get a
// no-op metric.
func StartTiming(ctx context.Context, name, description string) *Timing {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &Timing{}
	}
	m := timing.NewMetric(name)
	if description != "" {
		m = m.WithDesc(description)
	}
	return &Timing{metric: m.Start()}
}
