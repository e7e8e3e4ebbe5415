// Package observability starts and stops the process-wide telemetry:
// Uptrace traces and logs, Pyroscope profiling and the pprof listener.
package observability

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-baseball/internal/config"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
)

// Runtime holds whatever Start enabled. The zero value shuts down cleanly.
type Runtime struct {
	shutdownUptrace func(context.Context) error
	stopPyroscope   func() error
	pprof           *pprofServer
}

// Start enables each exporter configured in cfg. On error, everything
// already started is stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{}

	rt.shutdownUptrace = startUptrace(cfg, logger)

	stop, err := startPyroscope(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "start pyroscope")
	}
	rt.stopPyroscope = stop

	srv, err := startPprof(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "start pprof")
	}
	rt.pprof = srv

	return rt, nil
}

// Shutdown stops pprof, flushes profiles, then flushes spans and logs. Every
// step runs; the returned error combines all failures.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var err error
	if r.pprof != nil {
		err = crerr.CombineErrors(err, r.pprof.stop(ctx))
	}
	if r.stopPyroscope != nil {
		err = crerr.CombineErrors(err, r.stopPyroscope())
	}
	if r.shutdownUptrace != nil {
		err = crerr.CombineErrors(err, r.shutdownUptrace(ctx))
	}
	return err
}
