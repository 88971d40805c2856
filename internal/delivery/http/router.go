package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type RouterOptions struct {
	SecureCookies  bool
	MetricsPath    string
	MetricsHandler http.Handler
	ServiceName    string
}

func NewRouter(h *Handler, opts RouterOptions, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler)
	}

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/categories", h.listCategories)
		v1.Route("/catalog", func(c chi.Router) {
			c.Get("/", h.listItems)
			c.Get("/{id}", h.getItem)
		})

		v1.Group(func(owned chi.Router) {
			owned.Use(ownerMiddleware(opts.SecureCookies))

			owned.Route("/cart", func(c chi.Router) {
				c.Get("/", h.getCart)
				c.Delete("/", h.clearCart)
				c.Post("/items", h.addItem)
				c.Patch("/items/{id}", h.updateQuantity)
				c.Delete("/items/{id}", h.removeItem)
			})
			owned.Get("/checkout", h.checkoutOrder)
		})

		v1.Get("/contact", h.contactLinks)
		v1.Post("/contact", h.submitContact)
	})

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "cvshop"
	}

	return otelhttp.NewHandler(r, serviceName)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
