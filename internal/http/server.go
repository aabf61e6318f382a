package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"bikeshare/internal/charts"
	"bikeshare/internal/core"
	"bikeshare/internal/log"
	"bikeshare/internal/metrics"
	"bikeshare/internal/middleware/ratelimit"
	"bikeshare/internal/middleware/security"
	"bikeshare/internal/middleware/trace"
	"bikeshare/internal/services"
	appweb "bikeshare/web"
)

// Options tunes the parts of the server that come from configuration.
type Options struct {
	// RateLimitPerMinute caps export requests per client.
	RateLimitPerMinute int
	// TrustedProxies are CIDRs whose X-Forwarded-For is believed.
	TrustedProxies []string
	// StaticMaxAge is the Cache-Control max-age for /static/, in seconds.
	StaticMaxAge int
}

type Server struct {
	http.Server
	templates *template.Template
	dashboard *services.DashboardService
	recorder  *metrics.Recorder
	limiter   *ratelimit.Limiter
	clientIP  *security.ClientIPExtractor
	logger    *log.Logger

	retryAfter   string
	ready        atomic.Bool
	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run http.Server. recorder may be nil, in which case /metrics is not
// mounted.
func NewServer(addr string, svc *services.DashboardService, recorder *metrics.Recorder, logger *log.Logger, opts Options) *Server {
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = 30
	}
	if opts.StaticMaxAge <= 0 {
		opts.StaticMaxAge = 3600
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		dashboard:  svc,
		recorder:   recorder,
		limiter:    ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		clientIP:   security.NewClientIPExtractor(),
		logger:     logger,
		retryAfter: strconv.Itoa(max(1, 60/opts.RateLimitPerMinute)),
	}
	for _, cidr := range opts.TrustedProxies {
		if err := s.clientIP.AddTrustedProxy(cidr); err != nil {
			logger.Warn("Ignoring trusted proxy", log.FieldError, err, "cidr", cidr)
		}
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Error("Failed parsing templates", log.FieldError, err)
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(opts.StaticMaxAge)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	limit := s.limiter.Middleware(s.clientIP.ClientIP, s.handleRateLimited)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	// UI partials
	mux.HandleFunc("GET /ui/dashboard", s.handleDashboardPartial)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboardJSON)
	// Exports
	exports := log.ComponentMiddleware(log.ComponentExport)
	mux.Handle("GET /export.xlsx", limit(exports(http.HandlerFunc(s.handleExportWorkbook))))
	mux.Handle("GET /export/{file}", limit(exports(http.HandlerFunc(s.handleExportCSV))))
	if recorder != nil {
		mux.Handle("GET /metrics", recorder.Handler())
	}

	routeOf := func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}
	tracer := trace.NewMiddleware(logger, recorder, s.clientIP.ClientIP, routeOf)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = mux
	handler = headers.Middleware(handler)
	handler = tracer.Middleware(handler)
	handler = log.Middleware(logger)(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// SetReady flips the /readyz answer.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Shutdown gracefully shuts down the server and the limiter's cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.ready.Store(false)
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// selection resolves the query range against the dataset bounds.
func (s *Server) selection(r *http.Request) (core.DateRange, error) {
	start, end, err := ParseRangeQuery(r.URL.Query())
	if err != nil {
		return core.DateRange{}, err
	}
	return s.dashboard.Select(start, end), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"count": charts.FormatCount,
		"date":  func(d core.Date) string { return d.String() },
	}
}
