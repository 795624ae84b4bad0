package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"cashdrawer/internal/log"
	"cashdrawer/internal/metrics"
	"cashdrawer/internal/middleware/ratelimit"
	"cashdrawer/internal/middleware/security"
	"cashdrawer/internal/middleware/trace"
	"cashdrawer/internal/services"
	appweb "cashdrawer/web"
)

// Options tunes the server. Zero values fall back to defaults.
type Options struct {
	RateLimitPerMinute int
	// SessionTTL becomes the session cookie Max-Age.
	SessionTTL time.Duration
	Logger     *log.Logger

	// TemplatesFS and StaticFS replace the embedded web assets, mostly for tests.
	TemplatesFS fs.FS
	StaticFS    fs.FS
}

type Server struct {
	http.Server
	templates *template.Template
	drawer    *services.DrawerService
	metrics   *metrics.Metrics
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	logger    *log.Logger
	opts      Options
	started   time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, drawer *services.DrawerService, m *metrics.Metrics, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.TemplatesFS == nil {
		opts.TemplatesFS = appweb.TemplatesFS
	}
	if opts.StaticFS == nil {
		opts.StaticFS = appweb.StaticFS
	}
	if m == nil {
		m = metrics.New(nil)
	}

	logger := opts.Logger.WithComponent(log.ComponentHTTP)
	s := &Server{
		drawer:   drawer,
		metrics:  m,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector: security.NewDetector(m, opts.Logger),
		logger:   logger,
		opts:     opts,
		started:  time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(opts.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(trace.NewMiddleware(s.detector.ExtractClientIP, s.opts.Logger, s.metrics).Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.detector.Middleware)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		MethodNotAllowedError(allowedMethods(r.URL.Path)).Write(w)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(s.opts.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Get("/", s.handleIndex)

	r.Route("/drawer", func(r chi.Router) {
		r.Use(log.ComponentMiddleware(log.ComponentDrawer))
		r.Get("/summary", s.handleSummary)

		r.Group(func(r chi.Router) {
			r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimited))
			r.Post("/quantity", s.handleQuantity)
			r.Post("/target", s.handleTarget)
			r.Post("/reset", s.handleReset)
		})
	})

	return r
}

// allowedMethods feeds the Allow header of 405 responses.
func allowedMethods(path string) string {
	switch path {
	case "/drawer/quantity", "/drawer/target", "/drawer/reset":
		return http.MethodPost
	default:
		return http.MethodGet
	}
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.metrics.IncRateLimited()
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Quá nhiều yêu cầu, vui lòng thử lại sau").Write(w)
}

// RunMaintenance prunes rate limiter state until ctx is done.
func (s *Server) RunMaintenance(ctx context.Context) error {
	return s.limiter.Run(ctx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	// Ensure shutdown logic runs only once
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
