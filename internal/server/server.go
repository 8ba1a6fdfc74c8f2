package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/auth"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/booking"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/config"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/email"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/gym"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/logger"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/member"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/membership"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/owner"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/revenue"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/settings"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/web"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(cfg *config.Config, db *sqlx.DB, emailSvc *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLoggingMiddleware())
	router.Use(metricsMiddleware())

	router.SetFuncMap(web.TemplateFuncs())
	router.LoadHTMLGlob("web/templates/*.html")

	activityRepo := activitylog.NewRepository(db)

	authHandler := auth.NewHandler(db, activityRepo, cfg.SessionSecret)
	gymHandler := gym.NewHandler(db, activityRepo, cfg.PageSize)
	ownerHandler := owner.NewHandler(db, activityRepo, cfg.PageSize)
	memberHandler := member.NewHandler(db, activityRepo, cfg.PageSize)
	membershipHandler := membership.NewHandler(db, activityRepo, cfg.PageSize)
	bookingHandler := booking.NewHandler(db, activityRepo, emailSvc, cfg.PageSize)
	revenueHandler := revenue.NewHandler(db, activityRepo)
	settingsHandler := settings.NewHandler(db, activityRepo)
	activityHandler := activitylog.NewHandler(db, cfg.PageSize)

	// public
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"email_queue": emailSvc.QueueLength(c.Request.Context()),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", LoginRateLimit(1, 5), authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
	})

	// every admin page sits behind the session guard; mutations also
	// pass the CSRF check
	admin := router.Group("/", auth.RequireAdmin(cfg.SessionSecret), auth.CSRF())
	{
		admin.GET("/dashboard", revenueHandler.Dashboard)

		admin.GET("/gyms", gymHandler.List)
		admin.POST("/gyms/status", gymHandler.UpdateStatus)
		admin.POST("/gyms/delete", gymHandler.Delete)

		admin.GET("/owners", ownerHandler.List)
		admin.POST("/owners/status", ownerHandler.UpdateStatus)
		admin.POST("/owners/approve", ownerHandler.Approve)
		admin.POST("/owners/gym-limit", ownerHandler.SetGymLimit)
		admin.POST("/owners/delete", ownerHandler.Delete)

		admin.GET("/members", memberHandler.List)
		admin.POST("/members/delete", memberHandler.Delete)

		admin.GET("/memberships", membershipHandler.List)
		admin.POST("/memberships/cancel", membershipHandler.Cancel)
		admin.POST("/memberships/extend", membershipHandler.Extend)
		admin.POST("/memberships/payment-status", membershipHandler.UpdatePaymentStatus)
		admin.GET("/plans", membershipHandler.ListPlans)

		admin.GET("/bookings", bookingHandler.List)
		admin.POST("/bookings/complete", bookingHandler.Complete)
		admin.POST("/bookings/missed", bookingHandler.MarkMissed)
		admin.POST("/bookings/cancel", bookingHandler.Cancel)
		admin.POST("/bookings/reminder", bookingHandler.SendReminder)

		admin.GET("/revenue", revenueHandler.Report)
		admin.GET("/activity", activityHandler.List)

		admin.GET("/settings/:group", settingsHandler.Show)
		admin.POST("/settings/:group", settingsHandler.Update)

		// fetch endpoints for the inline toggles
		admin.POST("/api/gyms/:gymID/feature", gymHandler.ToggleFeatured)
		admin.POST("/api/members/:memberID/toggle-status", memberHandler.ToggleStatus)
		admin.POST("/api/settings/preview", settingsHandler.Preview)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	logger.Infof("Server listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path,
			strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
