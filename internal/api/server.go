package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/daybook/internal/auth"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/intelligence"
	"github.com/alexanderramin/daybook/internal/logging"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/alexanderramin/daybook/internal/storage"
)

const maxBodyBytes = 1 << 20

// Services are the use cases exposed over HTTP. Uploads may be nil when no
// bucket is configured.
type Services struct {
	Entries         service.EntryService
	Recommendations service.RecommendationService
	Styles          intelligence.StyleSuggestionService
	Catalog         service.CatalogService
	Quotes          service.QuoteService
	Reactions       service.ReactionService
	Uploads         storage.Presigner
}

type Server struct {
	svc    Services
	signer *auth.Signer
	logger logging.Logger
	mux    *http.ServeMux
}

func New(svc Services, signer *auth.Signer, logger *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		signer: signer,
		logger: logging.NewSlogLogger(logger).With("component", "api"),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	authed := func(h http.HandlerFunc) http.Handler { return auth.Middleware(s.signer, h) }
	admin := func(h http.HandlerFunc) http.Handler { return auth.Middleware(s.signer, auth.RequireAdmin(h)) }

	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/quotes/random", s.handleRandomQuote)

	s.mux.Handle("POST /api/entries", authed(s.handleGenerateEntry))
	s.mux.Handle("GET /api/entries", authed(s.handleListEntries))
	s.mux.Handle("GET /api/entries/{id}", authed(s.handleGetEntry))
	s.mux.Handle("DELETE /api/entries/{id}", authed(s.handleDeleteEntry))
	s.mux.Handle("GET /api/entries/{id}/recommendations", authed(s.handleRecommendations))
	s.mux.Handle("POST /api/entries/{id}/reactions", authed(s.handleReact))
	s.mux.Handle("GET /api/entries/{id}/reactions", authed(s.handleListReactions))
	s.mux.Handle("POST /api/styles/suggest", authed(s.handleSuggestStyles))
	s.mux.Handle("POST /api/uploads", authed(s.handleUpload))

	s.mux.Handle("GET /api/admin/songs", admin(s.handleListSongs))
	s.mux.Handle("POST /api/admin/songs", admin(s.handleCreateSong))
	s.mux.Handle("GET /api/admin/songs/{id}", admin(s.handleGetSong))
	s.mux.Handle("PUT /api/admin/songs/{id}", admin(s.handleUpdateSong))
	s.mux.Handle("DELETE /api/admin/songs/{id}", admin(s.handleDeleteSong))

	s.mux.Handle("GET /api/admin/quotes", admin(s.handleListQuotes))
	s.mux.Handle("POST /api/admin/quotes", admin(s.handleCreateQuote))
	s.mux.Handle("GET /api/admin/quotes/{id}", admin(s.handleGetQuote))
	s.mux.Handle("PUT /api/admin/quotes/{id}", admin(s.handleUpdateQuote))
	s.mux.Handle("DELETE /api/admin/quotes/{id}", admin(s.handleDeleteQuote))
}

// Handler returns the routed handler with request logging and recovery.
func (s *Server) Handler() http.Handler {
	return s.requestLogger(s.recoverer(s.mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, bind string) error {
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}

	srv := s.httpServer(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "api server listening", "address", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// httpServer builds the server for ListenAndServe. Request contexts keep
// ctx's values but not its cancellation, so Shutdown can drain in-flight
// generations.
func (s *Server) httpServer(ctx context.Context) *http.Server {
	return &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Generation can take up to the LLM task timeout plus one retry.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			s.writeError(w, http.StatusBadRequest, "request body is empty")
			return false
		}
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// userID returns the caller set by auth.Middleware.
func userID(r *http.Request) string {
	id, _ := auth.FromContext(r.Context())
	return id.UserID
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.svc.Uploads == nil {
		s.writeError(w, http.StatusServiceUnavailable, "photo uploads are not configured")
		return
	}
	up, err := s.svc.Uploads.NewUpload(r.Context(), userID(r))
	if err != nil {
		s.logger.Error(r.Context(), "presign failed", "error", err)
		s.writeError(w, http.StatusBadGateway, "could not create upload url")
		return
	}
	s.writeJSON(w, http.StatusCreated, up)
}

func (s *Server) handleSuggestStyles(w http.ResponseWriter, r *http.Request) {
	var req suggestStylesRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.svc.Styles.Suggest(r.Context(), req.Descriptions)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRandomQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.svc.Quotes.Random(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "no active quotes")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toQuoteResponse(q))
}
