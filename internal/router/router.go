package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shaibs3/bakery-api/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Handler is implemented by every component that contributes routes
type Handler interface {
	RegisterRoutes(router *mux.Router, logger *zap.Logger)
}

// Router wires handlers and middleware onto a gorilla/mux router
type Router struct {
	mux    *mux.Router
	logger *zap.Logger
}

func NewRouter(limiter *rate.Limiter, tel *telemetry.Telemetry, logger *zap.Logger, handlers []Handler) *Router {
	r := mux.NewRouter()
	routerLogger := logger.Named("router")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Use(recoverMiddleware(routerLogger))
	r.Use(requestIDMiddleware)
	if limiter != nil {
		r.Use(rateLimitMiddleware(limiter, routerLogger))
	}
	if tel != nil {
		m, err := newHTTPMetrics(tel.Meter)
		if err != nil {
			routerLogger.Error("failed to create http metrics, continuing without them", zap.Error(err))
		} else {
			r.Use(m.middleware)
		}
		r.Handle("/metrics", tel.Handler()).Methods(http.MethodGet)
	}
	r.Use(loggingMiddleware(routerLogger))

	for _, h := range handlers {
		h.RegisterRoutes(r, logger)
	}

	return &Router{mux: r, logger: routerLogger}
}

// CreateServer returns an http.Server serving this router on addr
func (r *Router) CreateServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
