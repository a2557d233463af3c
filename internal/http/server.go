package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"renteasy/internal/backend"
	applog "renteasy/internal/log"
	"renteasy/internal/middleware/ratelimit"
	"renteasy/internal/middleware/security"
	"renteasy/internal/middleware/trace"
)

// Options tunes the server around the backend.
type Options struct {
	AllowedOrigins []string
	// RateLimitPerMinute caps write requests per client; 0 disables it.
	RateLimitPerMinute int
	Logger             *applog.Logger
}

// Server is the JSON API over one backend.
type Server struct {
	http.Server
	backend *backend.Backend
	limiter *ratelimit.Limiter
	logger  *applog.Logger
	sl      *applog.StructuredLogger
}

// NewServer builds the router and the http.Server listening on addr.
func NewServer(addr string, b *backend.Backend, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		backend: b,
		logger:  logger,
		sl:      applog.NewStructuredLogger(logger),
	}
	if opts.RateLimitPerMinute > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute})
	}

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(origins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(origins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(trace.NewMiddleware(s.logger, trace.ClientIP).Handler)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", trace.HeaderRequestID},
		ExposedHeaders: []string{trace.HeaderRequestID, "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/properties", s.handleListProperties)
		r.Get("/properties/{id}", s.handleGetProperty)
		r.Get("/payments", s.handleListPayments)
		r.Get("/payments/summary", s.handlePaymentSummary)
		r.Get("/payments/{id}/receipt", s.handleReceipt)
		r.Get("/bills", s.handleListBills)
		r.Get("/bills/summary", s.handleBillSummary)
		r.Get("/expenses", s.handleListExpenses)
		r.Get("/reports/{kind}", s.handleReport)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/export.xlsx", s.handleExport)

		r.Group(func(r chi.Router) {
			if s.limiter != nil {
				r.Use(s.limiter.Middleware(trace.ClientIP, func(w http.ResponseWriter, _ *http.Request) {
					ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded").Write(w)
				}))
			}
			r.Post("/properties", s.handleAddProperty)
			r.Post("/properties/{id}/units", s.handleAddUnit)
			r.Post("/units/{id}/tenant", s.handleAddTenant)
			r.Post("/payments", s.handleRecordPayment)
			r.Post("/bills", s.handleAddBill)
			r.Post("/bills/{id}/paid", s.handleMarkBillPaid)
			r.Delete("/bills/{id}", s.handleDeleteBill)
			r.Post("/expenses", s.handleRecordExpense)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		NotFoundError("no such route").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		ErrorResponse(http.StatusMethodNotAllowed, "method not allowed").Write(w)
	})
	return r
}

// Limiter returns the write-request limiter, nil when disabled.
func (s *Server) Limiter() *ratelimit.Limiter {
	return s.limiter
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	NewResponse().JSON(map[string]string{"status": "ok"}).Write(w)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.backend.Ping(ctx); err != nil {
		s.logger.WarnContext(r.Context(), "Readiness check failed", "error", err)
		ErrorResponse(http.StatusServiceUnavailable, "store unavailable").Write(w)
		return
	}
	NewResponse().JSON(map[string]string{"status": "ready", "backend": s.backend.Type.String()}).Write(w)
}

// fail writes err's response and logs it when it is not the caller's fault.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	resp := FromError(err)
	if resp.statusCode >= http.StatusInternalServerError {
		s.sl.LogError(r.Context(), "Request failed", err, applog.ComponentHTTP, op,
			applog.NewFields().WithRequestID(trace.GetRequestID(r.Context())))
	}
	resp.Write(w)
}

// parseBody reads the request body, writing a 400 when it is unusable.
func parseBody(w http.ResponseWriter, r *http.Request) (*RequestBodyParser, bool) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			ErrorResponse(http.StatusRequestEntityTooLarge, err.Error()).Write(w)
			return nil, false
		}
		BadRequestError(err.Error()).Write(w)
		return nil, false
	}
	return p, true
}
