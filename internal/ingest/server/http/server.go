package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/autopeer-io/vfacts/internal/ingest/core/service"
	"github.com/autopeer-io/vfacts/internal/pkg/metrics"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/options"
)

// ReadyFunc reports whether the process can take traffic.
type ReadyFunc func() error

type Server struct {
	server  *http.Server
	options *options.HttpOptions
}

func NewServer(opts *options.HttpOptions, svc *service.Service, ready ReadyFunc) *Server {
	return &Server{
		server: &http.Server{
			Addr:              opts.Addr,
			Handler:           NewRouter(opts, svc, ready),
			ReadHeaderTimeout: opts.Timeout,
			ReadTimeout:       opts.Timeout,
			WriteTimeout:      opts.Timeout,
		},
		options: opts,
	}
}

// NewRouter builds the routes served by the ingest HTTP server.
func NewRouter(opts *options.HttpOptions, svc *service.Service, ready ReadyFunc) *mux.Router {
	h := &handler{svc: svc, maxBody: opts.MaxBodyBytes}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/vehicles", h.listVehicles).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}", h.forgetVehicle).Methods(http.MethodDelete)
	v1.HandleFunc("/vehicles/{id}/options", h.getOptions).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}/presence", h.getPresence).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}/{category}", h.getSnapshot).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}/{category}", h.putSnapshot).Methods(http.MethodPut, http.MethodPost)
	v1.HandleFunc("/decode/options", h.decodeOptions).Methods(http.MethodPost)
	v1.HandleFunc("/decode/{category}", h.decodeSnapshot).Methods(http.MethodPost)

	r.Use(logRequests)
	return r
}

func (s *Server) Start(ctx context.Context) error {
	lis, err := net.Listen(s.options.Network, s.options.Addr)
	if err != nil {
		return err
	}

	log.Info("Starting HTTP Server", "addr", s.options.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
