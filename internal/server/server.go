package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fortunaspin/fortuna/internal/chain"
	"github.com/fortunaspin/fortuna/internal/database"
	"github.com/fortunaspin/fortuna/internal/handler"
	"github.com/fortunaspin/fortuna/internal/logger"
	"github.com/fortunaspin/fortuna/internal/metrics"
	"github.com/fortunaspin/fortuna/internal/notify"
	"github.com/fortunaspin/fortuna/internal/session"
	"github.com/fortunaspin/fortuna/internal/stats"
)

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	sessionService session.Service
	statsService   stats.Service
	notifyService  notify.Service
	gateway        chain.Gateway
}

// NewServer creates a new Server instance
func NewServer(
	port int,
	apiKey string,
	trustedProxies []string,
	dbPool database.Pool,
	sessionService session.Service,
	statsService stats.Service,
	notifyService notify.Service,
	gateway chain.Gateway,
) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Unversioned operational routes
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/spin", handler.HandleSpin(sessionService))

		r.Route("/stats", func(r chi.Router) {
			r.Post("/sync", handler.HandleSyncStats(statsService))
			r.Get("/user", handler.HandleGetUserStats(statsService))
			r.Get("/leaderboard", handler.HandleGetLeaderboard(statsService))
			r.Get("/history", handler.HandleGetSpinHistory(statsService))
		})

		r.Route("/claim", func(r chi.Router) {
			r.Get("/balance", handler.HandleGetClaimBalance(gateway))
			r.Post("/", handler.HandleClaim(gateway))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Post("/token", handler.HandleSaveNotificationToken(notifyService))
			r.Post("/disable", handler.HandleDisableNotifications(notifyService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		sessionService: sessionService,
		statsService:   statsService,
		notifyService:  notifyService,
		gateway:        gateway,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints are scraped constantly, skip them
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
