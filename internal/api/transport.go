package api

import (
	"context"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/ygelfand/studentctl/internal/config"
)

type loggingTransport struct {
	base http.RoundTripper
	cfg  *config.Config
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.cfg.Logger.Debug("API Request", "method", req.Method, "url", req.URL.String())

	if t.cfg.Enabled(config.LevelTrace) {
		dump, err := httputil.DumpRequestOut(req, t.verbosityBody())
		if err == nil {
			t.cfg.Logger.Log(context.Background(), config.LevelTrace, "API Request Dump", "dump", string(dump))
		}
	}

	start := time.Now()
	res, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.cfg.Logger.Error("API Request Failed", "error", err, "duration", duration)
		return nil, err
	}

	t.cfg.Logger.Debug("API Response", "status", res.Status, "duration", duration)

	if t.cfg.Enabled(config.LevelTrace) {
		dump, err := httputil.DumpResponse(res, t.verbosityBody())
		if err == nil {
			t.cfg.Logger.Log(context.Background(), config.LevelTrace, "API Response Dump", "dump", string(dump))
		}
	}

	return res, nil
}

func (t *loggingTransport) verbosityBody() bool {
	return t.cfg.Verbosity >= 3
}
