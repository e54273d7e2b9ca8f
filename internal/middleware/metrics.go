package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/fairsplit/internal/metrics"
)

// MetricsInterceptor counts RPCs by procedure and result code and tracks
// their latency and concurrency.
func MetricsInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if m == nil {
				return next(ctx, req)
			}
			m.InFlight.Inc()
			defer m.InFlight.Dec()

			start := time.Now()
			resp, err := next(ctx, req)
			m.ObserveRPC(req.Spec().Procedure, codeOf(err), time.Since(start))
			return resp, err
		}
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
