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

	"github.com/pondkeeper/pondkeeper/internal/calendar"
	"github.com/pondkeeper/pondkeeper/internal/catalog"
	"github.com/pondkeeper/pondkeeper/internal/database"
	"github.com/pondkeeper/pondkeeper/internal/economy"
	"github.com/pondkeeper/pondkeeper/internal/handler"
	"github.com/pondkeeper/pondkeeper/internal/hunger"
	"github.com/pondkeeper/pondkeeper/internal/logger"
	"github.com/pondkeeper/pondkeeper/internal/metrics"
	"github.com/pondkeeper/pondkeeper/internal/progression"
	"github.com/pondkeeper/pondkeeper/internal/reminder"
	"github.com/pondkeeper/pondkeeper/internal/user"
)

// Services bundles everything the router needs. Keeps NewServer's signature
// from growing a parameter per feature.
type Services struct {
	User        user.Service
	Hunger      hunger.Service
	Economy     economy.Service
	Progression progression.Service
	Calendar    calendar.Service
	Reminder    reminder.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	services   Services
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, cat *catalog.Catalog, services Services, sweepBudget time.Duration) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Account routes
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", handler.HandleRegisterAccount(services.User))
			r.Get("/{accountID}", handler.HandleGetProfile(services.User))
		})

		// Hunger routes
		r.Route("/hunger", func(r chi.Router) {
			r.Post("/settle", handler.HandleSettleHunger(services.Hunger))
			r.Post("/ack", handler.HandleAckStolenFlies(services.Hunger))
		})

		// Shop routes
		r.Route("/shop", func(r chi.Router) {
			r.Get("/items", handler.HandleGetShopItems(cat))
			r.Post("/purchase", handler.HandlePurchaseItem(services.Economy))
			r.Post("/sell", handler.HandleSellItem(services.Economy))
			r.Post("/tradeup", handler.HandleTradeUp(services.Economy))
			r.Post("/gift/open", handler.HandleOpenGift(services.Economy))
		})

		// Wardrobe routes
		r.Post("/wardrobe/equip", handler.HandleEquipItem(services.Economy))
		r.Post("/items/seen", handler.HandleMarkItemsSeen(services.Economy))

		// Task and milestone routes
		r.Post("/tasks/complete", handler.HandleCompleteTask(services.Progression))
		r.Route("/milestones", func(r chi.Router) {
			r.Get("/", handler.HandleGetMilestones(services.Progression))
			r.Post("/claim", handler.HandleClaimMilestone(services.Progression))
		})

		// Calendar routes
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", handler.HandleGetCalendar(services.Calendar))
			r.Post("/claim", handler.HandleClaimCalendarDay(services.Calendar))
		})

		// Reminder routes
		r.Post("/activity", handler.HandleRecordActivity(services.Reminder))
		r.Post("/notifications/register", handler.HandleRegisterDevice(services.Reminder))

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/reminders/sweep", handler.HandleSweepReminders(services.Reminder, sweepBudget))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:   dbPool,
		services: services,
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
		statusCode:     http.StatusOK, // default status
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

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, "X-API-Key") || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{"[REDACTED]"}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
