package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aidanlsb/tablink/internal/linkresolver"
)

// maxBodyBytes caps a pushed snapshot.
const maxBodyBytes = 1 << 20

// Server serves the tab bridge API.
type Server struct {
	store  *Store
	log    *zap.Logger
	router chi.Router
}

// NewServer wires the routes around store.
func NewServer(store *Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{store: store, log: log, router: chi.NewRouter()}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger(log))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/tabs", s.handleGetTabs)
	s.router.Put("/tabs", s.handlePutTabs)
	s.router.Delete("/tabs", s.handleDeleteTabs)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("tab bridge listening", zap.String("address", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown tab bridge: %w", err)
	}
	s.log.Info("tab bridge stopped")
	return nil
}

type putTabsRequest struct {
	Tabs []linkresolver.Tab `json:"tabs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetTabs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Current())
}

func (s *Server) handlePutTabs(w http.ResponseWriter, r *http.Request) {
	var req putTabsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.log.Warn("rejected tab snapshot", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tab snapshot"})
		return
	}

	snap := s.store.Replace(req.Tabs)
	s.log.Debug("tab snapshot stored",
		zap.String("snapshot_id", snap.ID),
		zap.Int("tabs", len(snap.Tabs)))
	writeJSON(w, http.StatusOK, map[string]string{"snapshot_id": snap.ID})
}

func (s *Server) handleDeleteTabs(w http.ResponseWriter, r *http.Request) {
	s.store.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
