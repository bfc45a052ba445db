package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/DRSN-tech/match-engine/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/match-engine/internal/usecase"
	"github.com/DRSN-tech/match-engine/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(searchUC usecase.SearchUC, extractionUC usecase.ExtractionUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.router.Handle("/metrics", promhttp.Handler())

	r.router.Route("/api/v1", func(v1 chi.Router) {
		searchHandler := NewSearchHandler(searchUC, r.logger)
		registerSearchRoutes(v1, searchHandler)

		assetHandler := NewAssetHandler(extractionUC, r.logger)
		registerAssetRoutes(v1, assetHandler)
	})
}

func registerAssetRoutes(router chi.Router, assetHandler *AssetHandler) {
	router.Route("/assets", func(a chi.Router) {
		a.Post("/", assetHandler.ingestAssets)
	})
}

func registerSearchRoutes(router chi.Router, searchHandler *SearchHandler) {
	router.Route("/search", func(s chi.Router) {
		s.Post("/", searchHandler.search)
	})
	router.Route("/stats", func(s chi.Router) {
		s.Get("/", searchHandler.resourceStats)
	})
}
