// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/supriyamulik/cet-college-predictor/internal/authz"
	"github.com/supriyamulik/cet-college-predictor/internal/middleware"
)

// Router binds handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	enforcer      *authz.Enforcer // nil leaves admin routes to JWT only
}

// NewRouter creates a router. A nil chiMW uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, enforcer *authz.Enforcer) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		enforcer:      enforcer,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global middleware, applied to every route in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		// Health probes are not rate limited.
		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitLogin())
			r.Post("/login", h.Login)
		})

		r.Route("/admin", router.registerAdminRoutes)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(chiMiddleware(middleware.PrometheusMetrics))
			r.Use(router.chiMiddleware.Timeout())

			r.Post("/predict", h.Predict)
			r.Get("/model-info", h.ModelInfo)
			r.Get("/statistics", h.Statistics)
			r.Get("/filters", h.Filters)
			r.Get("/search", h.Search)

			r.Route("/colleges", router.registerCollegeRoutes)
			r.Get("/categories/{code}/info", h.CategoryInfo)

			r.Route("/directory", func(r chi.Router) {
				r.Get("/", h.Directory)
				r.Get("/filter", h.FilterDirectory)
				r.Get("/stats", h.DirectoryStats)
				r.Post("/{code}/add-to-form", h.AddToForm)
			})

			r.Route("/optionform", func(r chi.Router) {
				r.Post("/", h.SaveOptionForm)
				r.Get("/", h.GetOptionForm)
				r.Delete("/", h.DeleteOptionForm)
				r.Get("/{userID}", h.GetOptionForm)
				r.Delete("/{userID}", h.DeleteOptionForm)
				r.Get("/{userID}/export", h.ExportOptionForm)
			})

			r.Route("/resources", router.registerResourceRoutes)

			r.Route("/chat", func(r chi.Router) {
				r.Post("/", h.Chat)
				r.Get("/greeting", h.ChatGreeting)
				r.Get("/quick-replies", h.ChatQuickReplies)
				r.Get("/health", h.ChatHealth)
				r.Post("/clear", h.ChatClear)
			})
		})
	})

	return r
}

func (router *Router) registerCollegeRoutes(r chi.Router) {
	h := router.handler

	// Static segments win over {code} in chi regardless of order.
	r.Get("/", h.ListColleges)
	r.Get("/search", h.SearchColleges)
	r.Get("/branches", h.AvailableBranches)
	r.Get("/categories", h.AvailableCategories)
	r.Get("/common-branches", h.CommonBranches)
	r.Get("/common-categories", h.CommonCategories)
	r.Get("/cities", h.Cities)
	r.Get("/types", h.Types)
	r.Post("/compare", h.Compare)

	r.Get("/{code}", h.CollegeData)
	r.Get("/{code}/stats", h.CollegeStats)
	r.Get("/{code}/trends", h.CollegeTrends)
}

func (router *Router) registerResourceRoutes(r chi.Router) {
	h := router.handler

	r.Get("/summary", h.ResourcesSummary)

	r.Get("/documents", h.Documents)
	r.Get("/documents/search", h.SearchDocuments)
	r.Get("/documents/{category}", h.DocumentsByCategory)

	r.Get("/scholarships", h.Scholarships)
	r.Get("/scholarships/search", h.SearchScholarships)
	r.Get("/scholarships/{id}", h.Scholarship)

	r.Get("/links", h.Links)
	r.Get("/links/{category}", h.LinksByCategory)

	r.Get("/contacts", h.Contacts)

	r.Get("/dates", h.Dates)
	r.Get("/dates/upcoming", h.UpcomingDates)
	r.Get("/dates/{phase}", h.DatesByPhase)

	r.Get("/tips", h.Tips)
}

// registerAdminRoutes mounts dataset administration behind JWT and RBAC.
// Without an auth service every admin path answers 404.
func (router *Router) registerAdminRoutes(r chi.Router) {
	h := router.handler
	if h.deps.Auth == nil {
		r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
			respondServiceError(w, r, ErrAdminDisabled)
		})
		return
	}

	r.Use(h.deps.Auth.JWT().Authenticate)
	if router.enforcer != nil {
		r.Use(router.enforcer.AuthorizeRequest)
	}
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.Get("/dataset", h.DatasetStatus)
	r.Post("/dataset/reload", h.ReloadDataset)
}
