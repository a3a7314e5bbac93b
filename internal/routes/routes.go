package routes

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rehabflow/care-scheduler/internal/accounts"
	"github.com/rehabflow/care-scheduler/internal/audit"
	"github.com/rehabflow/care-scheduler/internal/config"
	domain "github.com/rehabflow/care-scheduler/internal/domain/appointment"
	"github.com/rehabflow/care-scheduler/internal/handlers"
	infraRepo "github.com/rehabflow/care-scheduler/internal/infra/repository"
	"github.com/rehabflow/care-scheduler/internal/infra/session"
	"github.com/rehabflow/care-scheduler/internal/logging"
	"github.com/rehabflow/care-scheduler/internal/metrics"
	"github.com/rehabflow/care-scheduler/internal/middleware"
	"github.com/rehabflow/care-scheduler/internal/models"
	"github.com/rehabflow/care-scheduler/internal/suggest"
	"github.com/rehabflow/care-scheduler/internal/timezone"
	ucAppointment "github.com/rehabflow/care-scheduler/internal/usecase/appointment"
	ucCalendar "github.com/rehabflow/care-scheduler/internal/usecase/calendar"
)

// Deps are the process-level collaborators. DB and Redis are optional and
// only required by the drivers that use them.
type Deps struct {
	Config   *config.Config
	Logger   zerolog.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry
	Now      func() time.Time
}

// App owns what RegisterRoutes built and must release on shutdown.
type App struct {
	audit   *audit.Dispatcher
	closers []func() error
}

func (a *App) Close() {
	a.audit.Close()
	for _, c := range a.closers {
		_ = c()
	}
}

func RegisterRoutes(ctx context.Context, r *gin.Engine, deps Deps) (*App, error) {
	cfg := deps.Config
	log := deps.Logger
	app := &App{}

	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(logging.Middleware(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigin, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	var appointmentRepo domain.Repository
	switch cfg.StoreDriver {
	case "postgres":
		if deps.DB == nil {
			return nil, fmt.Errorf("store driver postgres needs a database")
		}
		appointmentRepo = infraRepo.NewAppointmentGormRepository(deps.DB)
	default:
		appointmentRepo = infraRepo.NewAppointmentMemoryRepository()
	}

	var states ucCalendar.StateStore
	switch cfg.SessionDriver {
	case "redis":
		if deps.Redis == nil {
			return nil, fmt.Errorf("session driver redis needs a redis client")
		}
		states = session.NewRedisStore(deps.Redis, cfg.SessionTTL)
	default:
		states = session.NewMemoryStore()
	}

	var suggested suggest.Source = suggest.StaticSource{Dates: cfg.SuggestedDates}
	if cfg.GeminiAPIKey != "" {
		gemini, err := suggest.NewGeminiSource(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, gemini.Close)
		suggested = gemini
	}
	if deps.Redis != nil {
		suggested = suggest.NewCachedSource(suggested, deps.Redis, cfg.SuggestionCacheTTL)
	}

	policy, err := domain.PolicyByName(cfg.OverlapPolicy)
	if err != nil {
		return nil, err
	}

	schedulingMetrics := metrics.NewSchedulingMetrics(deps.Registry)

	auditLogger := audit.New(deps.DB, log)
	app.audit = audit.NewDispatcher(auditLogger, log)

	directory, err := accounts.NewDirectory(accounts.DemoSeeds(), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// ======================================================
	// USE CASES
	// ======================================================
	clock := ucAppointment.Clock(deps.Now)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, policy, app.audit, schedulingMetrics)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, policy, app.audit, schedulingMetrics, clock)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, app.audit, schedulingMetrics, clock)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, app.audit, schedulingMetrics, clock)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo, loc)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, loc)

	calendarSession := ucCalendar.NewSession(ucCalendar.Options{
		Repo:      appointmentRepo,
		States:    states,
		Suggested: suggested,
		Location:  loc,
		Now:       deps.Now,
		Metrics:   schedulingMetrics,
		Logger:    log,
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(directory, cfg.JWTSecret)
	meHandler := handlers.NewMeHandler(directory)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		getAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		loc,
	)
	calendarHandler := handlers.NewCalendarHandler(calendarSession, loc)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	// ======================================================
	// SECURED
	// ======================================================
	me := api.Group("/me")
	me.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	me.GET("", meHandler.Me)

	scheduling := me.Group("")
	scheduling.Use(middleware.RequireRole(models.RoleClinician, models.RoleAdmin))
	{
		scheduling.GET("/appointments", appointmentHandler.ListByDate)
		scheduling.GET("/appointments/month", appointmentHandler.ListByMonth)
		scheduling.GET("/appointments/:id", appointmentHandler.Get)
		scheduling.GET("/appointments/:id/draft", calendarHandler.EditDraft)
		scheduling.POST("/appointments", appointmentHandler.Create)
		scheduling.PUT("/appointments/:id", appointmentHandler.Update)
		scheduling.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		scheduling.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

		scheduling.GET("/calendar", calendarHandler.View)
		scheduling.POST("/calendar/navigate", calendarHandler.Navigate)
		scheduling.POST("/calendar/today", calendarHandler.Today)
		scheduling.POST("/calendar/select", calendarHandler.Select)
		scheduling.POST("/calendar/drafts", calendarHandler.NewDraft)
	}

	return app, nil
}
