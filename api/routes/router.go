package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tvindima/crm-plus-sub000/api/controllers"
	"github.com/tvindima/crm-plus-sub000/api/middleware"
	"github.com/tvindima/crm-plus-sub000/internal/agents"
	"github.com/tvindima/crm-plus-sub000/internal/analytics"
	"github.com/tvindima/crm-plus-sub000/internal/assignment"
	"github.com/tvindima/crm-plus-sub000/internal/auth"
	"github.com/tvindima/crm-plus-sub000/internal/distribution"
	"github.com/tvindima/crm-plus-sub000/internal/leads"
	"github.com/tvindima/crm-plus-sub000/internal/properties"
	"github.com/tvindima/crm-plus-sub000/internal/visits"
	"github.com/tvindima/crm-plus-sub000/pkg/config"
	"github.com/tvindima/crm-plus-sub000/pkg/db"
	"github.com/tvindima/crm-plus-sub000/pkg/logger"
	"github.com/tvindima/crm-plus-sub000/pkg/metrics"
	"github.com/tvindima/crm-plus-sub000/pkg/redis"
)

// Services bundles every domain service the router exposes.
type Services struct {
	Auth         auth.Service
	Agents       agents.Service
	Properties   properties.Service
	Leads        leads.Service
	Distribution distribution.Service
	Visits       visits.Service
	Assignment   assignment.Service
	Analytics    analytics.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	services Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/public/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))
		r.Post("/leads", controllers.LeadsWebsiteIntake(services.Leads, logg))
		r.Get("/properties", controllers.PropertiesGetByReference(services.Properties, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(services.Auth, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/change-password", controllers.AuthChangePassword(services.Auth, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/agents", func(r chi.Router) {
			r.Get("/", controllers.AgentsList(services.Agents, logg))
			r.Get("/{agentID}", controllers.AgentsGet(services.Agents, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin", logg))
				r.Post("/", controllers.AgentsCreate(services.Agents, logg))
				r.Patch("/{agentID}", controllers.AgentsUpdate(services.Agents, logg))
				r.Post("/{agentID}/deactivate", controllers.AgentsDeactivate(services.Agents, logg))
				r.Delete("/{agentID}", controllers.AgentsDelete(services.Agents, logg))
			})
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", controllers.PropertiesList(services.Properties, logg))
			r.Get("/{propertyID}", controllers.PropertiesGet(services.Properties, logg))
			r.Post("/", controllers.PropertiesCreate(services.Properties, logg))
			r.Patch("/{propertyID}", controllers.PropertiesUpdate(services.Properties, logg))
			r.Delete("/{propertyID}", controllers.PropertiesDelete(services.Properties, logg))
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", controllers.LeadsList(services.Leads, logg))
			r.Get("/{leadID}", controllers.LeadsGet(services.Leads, logg))
			r.Post("/", controllers.LeadsCreate(services.Leads, logg))
			r.Patch("/{leadID}", controllers.LeadsUpdate(services.Leads, logg))
			r.Put("/{leadID}/status", controllers.LeadsUpdateStatus(services.Leads, logg))
			r.Put("/{leadID}/assign", controllers.LeadsAssign(services.Leads, logg))
			r.Delete("/{leadID}", controllers.LeadsDelete(services.Leads, logg))
			r.Post("/distribute", controllers.LeadsDistribute(services.Distribution, logg))
		})

		r.Route("/visits", func(r chi.Router) {
			r.Get("/", controllers.VisitsList(services.Visits, logg))
			r.Get("/{visitID}", controllers.VisitsGet(services.Visits, logg))
			r.Post("/", controllers.VisitsSchedule(services.Visits, logg))
			r.Post("/{visitID}/confirm", controllers.VisitsConfirm(services.Visits, logg))
			r.Post("/{visitID}/cancel", controllers.VisitsCancel(services.Visits, logg))
			r.Post("/{visitID}/no-show", controllers.VisitsMarkNoShow(services.Visits, logg))
			r.Post("/{visitID}/check-in", controllers.VisitsCheckIn(services.Visits, logg))
			r.Post("/{visitID}/check-out", controllers.VisitsCheckOut(services.Visits, logg))
			r.Post("/{visitID}/feedback", controllers.VisitsSubmitFeedback(services.Visits, logg))
		})

		r.Route("/assignment", func(r chi.Router) {
			r.Get("/resolve", controllers.AssignmentResolve(services.Assignment, logg))
			r.Get("/validate", controllers.AssignmentValidate(services.Assignment, logg))
			r.Route("/routes", func(r chi.Router) {
				r.Get("/", controllers.AssignmentRoutesList(services.Assignment, logg))
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole("admin", logg))
					r.Post("/", controllers.AssignmentRoutesCreate(services.Assignment, logg))
					r.Put("/{routeID}", controllers.AssignmentRoutesUpdate(services.Assignment, logg))
					r.Delete("/{routeID}", controllers.AssignmentRoutesDelete(services.Assignment, logg))
				})
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin", logg))
				r.Post("/fix-all", controllers.AssignmentFixAll(services.Assignment, logg))
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/conversion", controllers.AnalyticsConversion(services.Analytics, logg))
			r.Get("/agent-performance", controllers.AnalyticsAgentPerformance(services.Analytics, logg))
			r.Get("/funnel", controllers.AnalyticsFunnel(services.Analytics, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Post("/users", controllers.AuthCreateUser(services.Auth, logg))
	})

	return r
}
