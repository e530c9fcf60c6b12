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
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/lunarbyte/tradevalues/internal/auth"
	"github.com/lunarbyte/tradevalues/internal/catalog"
	"github.com/lunarbyte/tradevalues/internal/database"
	"github.com/lunarbyte/tradevalues/internal/handler"
	"github.com/lunarbyte/tradevalues/internal/identity"
	"github.com/lunarbyte/tradevalues/internal/inventory"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/metrics"
	"github.com/lunarbyte/tradevalues/internal/review"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	identityService  identity.Service
	catalogService   catalog.Service
	inventoryService inventory.Service
	reviewService    review.Service
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, dbPool database.Pool, issuer *auth.Issuer, userLoader auth.UserLoader, identityService identity.Service, catalogService catalog.Service, inventoryService inventory.Service, reviewService review.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	monitor := NewRateMonitor()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, monitor))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(auth.Authenticate(issuer, userLoader))

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public catalog routes
		r.Get("/summary", handler.HandleGetSummary(catalogService))
		r.Get("/categories", handler.HandleListCategories(catalogService))
		r.Get("/items", handler.HandleListItems(catalogService))
		r.Get("/items/picker", handler.HandleItemPicker(catalogService))
		r.Get("/items/{slug}", handler.HandleGetItem(catalogService))

		// Account routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handler.HandleRegister(identityService))
			r.Post("/login", handler.HandleLogin(identityService, issuer))
			r.Get("/verify/{token}", handler.HandleVerify(identityService))
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuthenticated)

			r.Get("/profile", handler.HandleGetProfile(identityService))

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", handler.HandleListInventory(inventoryService))
				r.Post("/{slug}", handler.HandleAddInventoryItem(inventoryService))
				r.Delete("/{id}", handler.HandleRemoveInventoryItem(inventoryService))
			})
		})

		// Reviewer routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireReviewer)

			r.Post("/items/{slug}/value-requests", handler.HandleSubmitValueRequest(reviewService))
			r.Get("/value-requests", handler.HandleListMyValueRequests(reviewService))
		})

		// Staff routes: catalog management
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireStaff)

			r.Post("/categories", handler.HandleCreateCategory(catalogService))
			r.Delete("/categories/{id}", handler.HandleDeleteCategory(catalogService))

			r.Post("/items", handler.HandleCreateItem(catalogService))
			r.Put("/items/{id}", handler.HandleUpdateItem(catalogService))
			r.Delete("/items/{id}", handler.HandleDeleteItem(catalogService))
		})

		// Superuser routes: request review and role management
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSuperuser)

			r.Route("/admin/value-requests", func(r chi.Router) {
				r.Get("/", handler.HandleListValueRequests(reviewService))
				r.Post("/{id}/approve", handler.HandleApproveValueRequest(reviewService))
				r.Post("/{id}/reject", handler.HandleRejectValueRequest(reviewService))
				r.Put("/{id}", handler.HandleEditValueRequest(reviewService))
			})

			r.Post("/admin/users/{username}/roles", handler.HandleGrantRole(identityService))
			r.Delete("/admin/users/{username}/roles", handler.HandleRevokeRole(identityService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		identityService:  identityService,
		catalogService:   catalogService,
		inventoryService: inventoryService,
		reviewService:    reviewService,
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

		// Skip logging for health check endpoints and metrics
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

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
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
