package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"studio-admin/internal/config"
	"studio-admin/internal/transport/httpserver/handler"
	authmw "studio-admin/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.IdentityAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Get("/catalog/classes", handlers.CatalogClasses)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Route("/classes", func(r chi.Router) {
				r.Get("/", handlers.ListClasses)
				r.Post("/drafts/{step}", handlers.UpsertClassDraft)
				r.Get("/{id}", handlers.GetClass)
				r.Get("/{id}/resume-step", handlers.GetClassResumeStep)
				r.Post("/{id}/activate", handlers.ActivateClass)
				r.Patch("/{id}/status", handlers.SetClassStatus)
				r.Put("/{id}/memberships", handlers.SyncClassMemberships)
				r.Delete("/{id}", handlers.DeleteClass)
			})

			r.Route("/class-packs", func(r chi.Router) {
				r.Get("/", handlers.ListPacks)
				r.Post("/", handlers.CreatePack)
				r.Post("/price-preview", handlers.PackPricePreview)
				r.Get("/{id}", handlers.GetPack)
				r.Put("/{id}", handlers.UpdatePack)
				r.Delete("/{id}", handlers.DeletePack)
			})

			r.Route("/memberships", func(r chi.Router) {
				r.Get("/", handlers.ListMemberships)
				r.Post("/", handlers.CreateMembership)
				r.Get("/{id}", handlers.GetMembership)
				r.Put("/{id}", handlers.UpdateMembership)
				r.Delete("/{id}", handlers.DeleteMembership)
			})

			r.Route("/instructors", func(r chi.Router) {
				r.Get("/", handlers.ListInstructors)
				r.Post("/", handlers.CreateInstructor)
				r.Get("/{id}", handlers.GetInstructor)
				r.Put("/{id}", handlers.UpdateInstructor)
				r.Put("/{id}/classes", handlers.AssignInstructorClasses)
				r.Delete("/{id}", handlers.DeleteInstructor)
			})

			r.Route("/promotions", func(r chi.Router) {
				r.Get("/", handlers.ListPromotions)
				r.Post("/", handlers.CreatePromotion)
				r.Get("/{id}", handlers.GetPromotion)
				r.Put("/{id}", handlers.UpdatePromotion)
				r.Delete("/{id}", handlers.DeletePromotion)
			})

			r.Route("/news", func(r chi.Router) {
				r.Get("/", handlers.ListNews)
				r.Post("/", handlers.CreateNews)
				r.Get("/{id}", handlers.GetNews)
				r.Put("/{id}", handlers.UpdateNews)
				r.Patch("/{id}/publish", handlers.PublishNews)
				r.Delete("/{id}", handlers.DeleteNews)
			})

			r.Get("/ratings", handlers.ListRatings)
			r.Get("/ratings/summary", handlers.RatingSummaries)
			r.Delete("/ratings/{id}", handlers.DeleteRating)

			r.Get("/check-ins", handlers.ListCheckIns)
			r.Post("/check-ins", handlers.CreateCheckIn)
			r.Delete("/check-ins/{id}", handlers.DeleteCheckIn)

			r.Post("/media", handlers.UploadMedia)
			r.Post("/media/presign", handlers.PresignMedia)
			r.Delete("/media", handlers.DeleteMedia)

			r.Route("/admins", func(r chi.Router) {
				r.Use(authmw.RequireRole("owner", "admin"))
				r.Get("/", handlers.ListAdmins)
				r.Group(func(r chi.Router) {
					r.Use(authmw.RequireRole("owner"))
					r.Post("/", handlers.CreateAdmin)
					r.Patch("/{id}", handlers.UpdateAdmin)
					r.Post("/{id}/disable", handlers.DisableAdmin)
					r.Delete("/{id}", handlers.DeleteAdmin)
				})
			})
		})
	})

	return r
}
