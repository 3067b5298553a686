package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teamflowhq/teamflow-backend/api/controllers"
	"github.com/teamflowhq/teamflow-backend/api/middleware"
	"github.com/teamflowhq/teamflow-backend/internal/applications"
	"github.com/teamflowhq/teamflow-backend/internal/files"
	"github.com/teamflowhq/teamflow-backend/internal/notifications"
	"github.com/teamflowhq/teamflow-backend/internal/recruitments"
	"github.com/teamflowhq/teamflow-backend/internal/subscriptions"
	"github.com/teamflowhq/teamflow-backend/pkg/config"
	"github.com/teamflowhq/teamflow-backend/pkg/db"
	"github.com/teamflowhq/teamflow-backend/pkg/logger"
	"github.com/teamflowhq/teamflow-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	subscriptionsService subscriptions.Service,
	recruitmentsService recruitments.Service,
	applicationsService applications.Service,
	filesService files.Service,
	notificationsService notifications.Service,
) http.Handler {
	limits := cfg.Pagination.Limits()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Frontend.BaseURL),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg))

		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/", controllers.SubscriptionCreate(subscriptionsService, logg))
			r.Get("/", controllers.SubscriptionList(subscriptionsService, logg, limits))
			r.Get("/{subscriptionId}", controllers.SubscriptionDetail(subscriptionsService, logg))
			r.Patch("/{subscriptionId}/status", controllers.SubscriptionUpdateStatus(subscriptionsService, logg))
		})

		r.Route("/recruitments", func(r chi.Router) {
			r.Post("/", controllers.RecruitmentCreate(recruitmentsService, logg))
			r.Get("/", controllers.RecruitmentList(recruitmentsService, logg, limits))
			r.Get("/{recruitmentId}", controllers.RecruitmentDetail(recruitmentsService, logg))
			r.Patch("/{recruitmentId}/status", controllers.RecruitmentUpdateStatus(recruitmentsService, logg))
			r.Post("/{recruitmentId}/applications", controllers.ApplicationApply(applicationsService, logg))
			r.Get("/{recruitmentId}/applications", controllers.ApplicationList(applicationsService, logg, limits))
		})

		r.Route("/applications", func(r chi.Router) {
			r.Patch("/{applicationId}/status", controllers.ApplicationUpdateStatus(applicationsService, logg))
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/", controllers.FileCreate(filesService, logg))
			r.Get("/", controllers.FileList(filesService, logg, limits))
			r.Get("/{fileId}", controllers.FileDetail(filesService, logg))
			r.Patch("/{fileId}/status", controllers.FileUpdateStatus(filesService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg, limits))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})
	})

	return r
}
