package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"spendlog/internal/analytics"
	"spendlog/internal/cache"
	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/middleware/ratelimit"
	"spendlog/internal/middleware/security"
	"spendlog/internal/middleware/trace"
	"spendlog/internal/services"
	"spendlog/internal/sheets/google"
	appweb "spendlog/web"
)

// SheetsExporter pushes an export snapshot to a spreadsheet.
type SheetsExporter interface {
	Export(ctx context.Context, records []core.Record) (google.Result, error)
}

// ServerConfig holds the presentation settings.
type ServerConfig struct {
	Addr               string
	Location           *time.Location
	RateLimitPerMinute int
	SummaryCacheTTL    time.Duration
	Sheets             SheetsExporter // nil disables POST /export/sheets
	TrustedProxies     []string       // CIDRs added to the private ranges
	Logger             *slog.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	svc       *services.LedgerService
	sheets    SheetsExporter
	loc       *time.Location
	now       func() time.Time

	summaries    *cache.LRUCache[analytics.Summary]
	cacheManager *cache.Manager
	group        singleflight.Group

	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(cfg ServerConfig, svc *services.LedgerService) *Server {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.SummaryCacheTTL <= 0 {
		cfg.SummaryCacheTTL = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	mux := http.NewServeMux()
	logger := applog.New(applog.Config{Component: applog.ComponentHTTP, Handler: cfg.Logger.Handler()})

	detector := security.NewDetector()
	for _, cidr := range cfg.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			cfg.Logger.Warn("Ignoring trusted proxy", "cidr", cidr, "error", err)
		}
	}

	s := &Server{
		Server: http.Server{
			Addr:              cfg.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		svc:          svc,
		sheets:       cfg.Sheets,
		loc:          cfg.Location,
		now:          time.Now,
		summaries:    cache.NewLRUCache[analytics.Summary](16, cfg.SummaryCacheTTL),
		cacheManager: cache.NewManager(cfg.Logger),
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		detector:     detector,
		tracer:       trace.NewMiddleware(detector.ExtractClientIP, logger),
	}
	s.cacheManager.Register(s.summaries)
	s.cacheManager.StartCleanup(5 * time.Minute)

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		cfg.Logger.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		cfg.Logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /ui/history", s.handleHistory)
	mux.HandleFunc("GET /ui/dashboard", s.handleDashboard)

	exports := applog.ComponentMiddleware(applog.ComponentExport)
	mux.Handle("GET /export.csv", exports(security.NoStore(http.HandlerFunc(s.handleExportCSV))))
	mux.Handle("GET /export.xlsx", exports(security.NoStore(http.HandlerFunc(s.handleExportXLSX))))
	mux.Handle("GET /report.pdf", exports(security.NoStore(http.HandlerFunc(s.handleReportPDF))))
	mux.Handle("POST /export/sheets", applog.ComponentMiddleware(applog.ComponentSheets)(http.HandlerFunc(s.handleExportSheets)))

	api := applog.ComponentMiddleware(applog.ComponentAPI)
	mux.Handle("GET /api/expenses", api(http.HandlerFunc(s.handleAPIListExpenses)))
	mux.Handle("POST /api/expenses", api(http.HandlerFunc(s.handleAPICreateExpense)))
	mux.Handle("GET /api/summary", api(http.HandlerFunc(s.handleAPISummary)))
	mux.Handle("GET /api/catalog", api(http.HandlerFunc(s.handleAPICatalog)))
	mux.Handle("GET /api/metrics", api(http.HandlerFunc(s.handleAPIMetrics)))

	var h http.Handler = mux
	h = s.limiter.Middleware(detector.ExtractClientIP, http.MethodPost)(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = applog.RequestIDMiddleware(trace.RequestIDFromRequest)(h)
	h = applog.Middleware(logger)(h)
	h = s.tracer.Middleware(h)
	h = detector.Middleware(h)
	s.Handler = h

	return s
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"rupees": formatRupees,
		"share":  formatShare,
		"stamp": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"isGaming": func(c core.Category) bool { return c == core.Gaming },
	}
}

// Shutdown stops background goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusServiceUnavailable)
		return
	}
	if _, err := s.svc.Ledger().Len(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "ledger unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) today() time.Time {
	return s.now().In(s.loc)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}
