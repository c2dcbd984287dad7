// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves a read-only JSON view of the ledger over HTTP.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/posvault/posvault/accounts"
	"github.com/posvault/posvault/core"
	"github.com/posvault/posvault/log"
	"github.com/posvault/posvault/metrics"
	"github.com/posvault/posvault/token"
)

var (
	logger = log.WithContext("pkg", "api")

	metricRequestCount = metrics.LazyCounterVec("api_request_count", []string{"route", "code"})
)

// SetLogger replaces the package logger.
func SetLogger(l log.Logger) { logger = l }

// Options configures New.
type Options struct {
	// AllowedOrigins is a comma separated CORS origin list. Empty disables CORS.
	AllowedOrigins string
	// EnableMetrics mounts /metrics and counts requests.
	EnableMetrics bool
}

type server struct {
	reader Reader
}

// New returns the http handler of the API over r.
func New(r Reader, opts Options) http.Handler {
	s := &server{reader: r}

	router := mux.NewRouter()
	router.Path("/accounts/{address}").Methods(http.MethodGet).HandlerFunc(WrapHandlerFunc(s.handleGetAccount))
	router.Path("/tokens/{address}").Methods(http.MethodGet).HandlerFunc(WrapHandlerFunc(s.handleGetToken))
	router.Path("/states/{depositMint}").Methods(http.MethodGet).HandlerFunc(WrapHandlerFunc(s.handleGetState))

	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.Handler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	if origins := strings.TrimSpace(opts.AllowedOrigins); origins != "" {
		list := strings.Split(origins, ",")
		for i, o := range list {
			list[i] = strings.ToLower(strings.TrimSpace(o))
		}
		handler = handlers.CORS(
			handlers.AllowedOrigins(list),
			handlers.AllowedMethods([]string{http.MethodGet}),
		)(handler)
	}
	return requestLogger(handler)
}

func parseAddress(req *http.Request, name string) (core.Address, error) {
	addr, err := core.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return core.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// statusOf maps lookup failures to client errors.
func statusOf(err error) error {
	switch {
	case errors.Is(err, accounts.ErrNotFound):
		return NotFound(err)
	case errors.Is(err, token.ErrNotToken):
		return BadRequest(err)
	}
	return err
}

func (s *server) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	acc, err := LoadAccount(s.reader, addr)
	if err != nil {
		return statusOf(err)
	}
	return WriteJSON(w, acc)
}

func (s *server) handleGetToken(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req, "address")
	if err != nil {
		return err
	}
	view, err := LoadToken(s.reader, addr)
	if err != nil {
		return statusOf(err)
	}
	return WriteJSON(w, view)
}

func (s *server) handleGetState(w http.ResponseWriter, req *http.Request) error {
	depositMint, err := parseAddress(req, "depositMint")
	if err != nil {
		return err
	}
	view, err := LoadState(s.reader, depositMint)
	if err != nil {
		return statusOf(err)
	}
	return WriteJSON(w, view)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		route := "unknown"
		if r := mux.CurrentRoute(req); r != nil {
			if tmpl, err := r.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		metricRequestCount().AddWithLabel(1, map[string]string{"route": route, "code": http.StatusText(rec.status)})
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		logger.Debug("api request", "method", req.Method, "uri", req.URL.RequestURI(), "elapsed", time.Since(start))
	})
}
