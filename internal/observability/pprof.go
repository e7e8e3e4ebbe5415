package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/config"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
)

const pprofPrefix = "/debug/pprof/"

var pprofHandlers = map[string]http.HandlerFunc{
	"":        pprof.Index,
	"cmdline": pprof.Cmdline,
	"profile": pprof.Profile,
	"symbol":  pprof.Symbol,
	"trace":   pprof.Trace,
}

type pprofServer struct {
	srv    *http.Server
	logger *logging.Logger
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	for name, h := range pprofHandlers {
		mux.HandleFunc(pprofPrefix+name, h)
	}
	return mux
}

// startPprof binds the listener before returning so a taken port fails
// startup instead of a background goroutine.
func startPprof(cfg config.Config, logger *logging.Logger) (*pprofServer, error) {
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, err
	}

	p := &pprofServer{
		srv: &http.Server{
			Handler:           pprofMux(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
	go func() {
		if err := p.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()

	logger.Info("pprof server listening", "addr", ln.Addr().String())
	return p, nil
}

func (p *pprofServer) stop(ctx context.Context) error {
	if err := p.srv.Shutdown(ctx); err != nil {
		return err
	}
	p.logger.Info("pprof server stopped")
	return nil
}
