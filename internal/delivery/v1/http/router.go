package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/vitrine-shop/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/vitrine-shop/go-backend/internal/cfg"
	"github.com/vitrine-shop/go-backend/internal/guard"
	"github.com/vitrine-shop/go-backend/internal/usecase"
	"github.com/vitrine-shop/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, g *guard.Guard, httpCfg *cfg.HTTPConfig) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(r.withLogging)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Get("/debug/ip", debugIP)

	r.router.Route("/api", func(api chi.Router) {
		prHandler := NewProductHandler(catalogUC, r.logger)
		registerProductRoutes(api, prHandler, GuardMiddleware(g, r.logger))
	})

	// В production сервер отдаёт собранный фронтенд
	if httpCfg.AppEnv == cfg.EnvProduction {
		r.router.NotFound(spaHandler(httpCfg.StaticDir))
	}
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, guardMw func(http.Handler) http.Handler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)

		pr.Group(func(mut chi.Router) {
			mut.Use(guardMw)
			mut.Post("/", prHandler.createProduct)
			mut.Put("/{id}", prHandler.updateProduct)
			mut.Delete("/{id}", prHandler.deleteProduct)
		})
	})
}

// withLogging логирует каждый запрос после обработки.
func (r *Router) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		r.logger.Infof("%s %s %d %dB %s request_id=%s",
			req.Method,
			req.URL.Path,
			ww.Status(),
			ww.BytesWritten(),
			time.Since(start),
			middleware.GetReqID(req.Context()),
		)
	})
}

// spaHandler отдаёт файлы собранного фронтенда, а для клиентских маршрутов — index.html.
func spaHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean("/"+strings.TrimPrefix(r.URL.Path, "/")))

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}

		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	}
}
