package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pawtalk/pet-translator/internal/config"
	"github.com/pawtalk/pet-translator/internal/logger"
	"github.com/pawtalk/pet-translator/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

func NewRouter(cfg config.ServerConfig, l *zap.SugaredLogger, upload *UploadHandler, page http.HandlerFunc) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"*"},
		ExposedHeaders:       []string{"Content-Length", "Content-Type"},
		OptionsSuccessStatus: http.StatusOK,
	})

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestID,
		logger.Middleware(l),
		metrics.Middleware,
		Recoverer(l),
		c.Handler,
		middleware.Throttle(cfg.ThrottleLimit),
		middleware.Timeout(cfg.Timeout),
	}...)

	r.Get("/", page)
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", upload.Upload)
		r.Options("/upload", upload.Options)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	return r
}
