package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/otsempay/pix-gateway/internal/handlers"
	"github.com/otsempay/pix-gateway/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)

	// Browser admin UI calls the /api endpoints cross-origin in dev.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-webhook-signature"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	pxh := handlers.NewPixHandlers(deps)
	bph := handlers.NewBankProviderHandlers(deps)
	adh := handlers.NewAdminHandlers(deps)
	kyh := handlers.NewKycHandlers(deps)

	r.Mount("/pix", pxh.PixRoutes())
	r.Route("/api", func(r chi.Router) {
		r.Mount("/bank-provider", bph.BankProviderRoutes())
		r.Mount("/admin", adh.AdminRoutes())
		r.Mount("/kyc", kyh.KycRoutes())
	})
	r.Get("/healthz", handlers.Healthz)

	return r
}
