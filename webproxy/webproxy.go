// Package webproxy serves the remote web dashboards through a loopback
// reverse proxy that injects the stored Authorization header. The browser
// talks to 127.0.0.1; every forwarded request, including same-origin
// redirects that route back through the proxy, carries
// the credentials without the user ever typing them into a browser prompt.
package webproxy

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/botdeck/api"
	"github.com/rustyeddy/botdeck/config"
	"github.com/rustyeddy/botdeck/id"
	"github.com/rustyeddy/botdeck/logger"
)

// Server is the loopback proxy. Exposes the two embedded surfaces:
// /bot/{botID}/ (per-bot dashboard) and /terminal.
type Server struct {
	store *config.Store
	log   *logger.Logger
	addr  string

	httpServer *http.Server
}

// New builds a proxy that will bind to addr ("127.0.0.1:0" picks a free
// port).
func New(store *config.Store, addr string, log *logger.Logger) *Server {
	return &Server{store: store, log: log, addr: addr}
}

// Start binds the listener and serves until ctx is cancelled. Returns the
// bound address, e.g. "127.0.0.1:43817". Fails up front when no base URL
// is configured rather than serving a proxy with nowhere to go.
func (s *Server) Start(ctx context.Context) (string, error) {
	if !s.store.Snapshot().IsConfigured() {
		return "", api.ErrNotConfigured
	}

	r := chi.NewRouter()
	r.HandleFunc("/bot/{botID}/*", s.proxy)
	r.HandleFunc("/bot/{botID}/", s.proxy)
	r.HandleFunc("/terminal", s.proxy)
	r.HandleFunc("/terminal/*", s.proxy)

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", s.addr, err)
	}

	s.httpServer = &http.Server{Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.WithComponent("webproxy").WithError(err).Error("proxy stopped")
		}
	}()

	bound := ln.Addr().String()
	s.log.WithComponent("webproxy").Info("serving web surfaces on http://" + bound)
	return bound, nil
}

// proxy forwards one request upstream. The config snapshot is captured per
// request so a settings edit mid-session takes effect on the next load.
func (s *Server) proxy(w http.ResponseWriter, r *http.Request) {
	cfg := s.store.Snapshot()
	base := cfg.BaseURL()
	if base == nil {
		http.Error(w, "server URL not configured", http.StatusServiceUnavailable)
		return
	}

	reqID := id.New()
	rp := &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			s.rewrite(req, base, cfg.BasicAuthHeader())
		},
		ModifyResponse: func(resp *http.Response) error {
			s.log.WithFields(logrus.Fields{
				"component":  "webproxy",
				"request_id": reqID,
				"path":       resp.Request.URL.Path,
				"status":     resp.StatusCode,
			}).Debug("upstream response")
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, _ *http.Request, err error) {
			s.log.WithFields(logrus.Fields{"component": "webproxy", "request_id": reqID}).
				WithError(err).Warn("upstream unreachable")
			http.Error(w, "upstream unreachable: "+err.Error(), http.StatusBadGateway)
		},
	}
	rp.ServeHTTP(w, r)
}

func (s *Server) rewrite(req *http.Request, base *url.URL, auth string) {
	req.URL.Scheme = base.Scheme
	req.URL.Host = base.Host
	req.Host = base.Host
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
}

// BotDashboardPath returns the local path serving a bot's dashboard.
func BotDashboardPath(botID string) string {
	return "/bot/" + url.PathEscape(botID) + "/"
}
