package app

import (
	"fmt"
	"time"

	"sellinginfinity/config"
	bookingController "sellinginfinity/controllers/booking"
	calendarController "sellinginfinity/controllers/calendar"
	emailController "sellinginfinity/controllers/email"
	healthController "sellinginfinity/controllers/health"
	productController "sellinginfinity/controllers/product"
	reviewController "sellinginfinity/controllers/review"
	"sellinginfinity/middleware"
	"sellinginfinity/repository"
	"sellinginfinity/routers/adminRoutes"
	"sellinginfinity/routers/reviewRoutes"
	"sellinginfinity/routers/userRoutes"
	"sellinginfinity/services/booking"
	"sellinginfinity/services/calendar"
	"sellinginfinity/services/mailer"
	"sellinginfinity/services/notify"
	"sellinginfinity/services/ratelimit"
	"sellinginfinity/services/review"
	"sellinginfinity/storage"
	"sellinginfinity/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds every long-lived dependency. It is built once at startup and
// shared by all requests.
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Redis    *goredis.Client
	Mailer   *mailer.Mailer
	Reviews  *review.Service
	Calendar *calendar.Service
	Bookings *booking.Service
	PDFs     *storage.PDFStorage // nil when MINIO_ENDPOINT is unset
	Limiter  middleware.Allower  // nil when REDIS_ADDR is unset

	location *time.Location
	digest   *cron.Cron
}

func New(cfg *config.Config, log *zap.Logger, db *gorm.DB) (*App, error) {
	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load CALENDAR_TIMEZONE: %w", err)
	}

	a := &App{Config: cfg, Log: log, DB: db, location: loc}

	a.Mailer = mailer.New(cfg.Mail, log.Named("mailer"))
	a.Reviews = review.NewService(
		repository.NewReviewRepository(db),
		notify.FromConfig(cfg.Notify, a.Mailer, log),
		log.Named("reviews"),
		review.WithNotifyTimeout(cfg.Notify.Timeout),
	)
	a.Calendar = calendar.NewService(repository.NewCalendarRepository(db), loc, log.Named("calendar"))
	a.Bookings = booking.NewService(repository.NewBookingRepository(db))

	if cfg.Redis.Addr != "" {
		a.Redis = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.Limiter = ratelimit.New(a.Redis, "review_submit:", cfg.Redis.SubmitLimit, cfg.Redis.SubmitWindow)
	}

	if cfg.Storage.Endpoint != "" {
		pdfs, err := storage.NewMinIO(cfg.Storage, log.Named("storage"))
		if err != nil {
			return nil, err
		}
		a.PDFs = pdfs
	}

	return a, nil
}

// Server builds the fiber application with all routes registered.
func (a *App) Server() *fiber.App {
	server := fiber.New(fiber.Config{
		AppName:      "sellinginfinity",
		ErrorHandler: middleware.ErrorHandler(a.Log),
		ReadTimeout:  a.Config.App.RequestTimeout,
		BodyLimit:    25 << 20,
	})

	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins: a.Config.App.CORSOrigin,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	server.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	auth := middleware.JWTMiddleware(a.Config.Auth.JWTSecret)
	requireAdmin := middleware.RequireAdmin(a.Config.Auth.AdminEmails)

	reviews := reviewController.NewController(a.Reviews, a.Log)
	bookings := bookingController.NewController(a.Bookings, a.Log)

	server.Get("/api/health", healthController.NewController(a.DB).Health)
	reviewRoutes.SetupReviewRoutes(server, reviews, middleware.RateLimit(a.Limiter, a.Log))
	adminRoutes.SetupAdminRoutes(server, adminRoutes.Controllers{
		Reviews:  reviews,
		Calendar: calendarController.NewController(a.Calendar, a.Log),
		Email:    emailController.NewController(a.Mailer),
		Products: productController.NewController(a.PDFs, a.Log),
		Bookings: bookings,
	}, auth, requireAdmin)
	userRoutes.SetupUserRoutes(server, bookings, auth)

	return server
}

// StartJobs schedules the pending-review digest when an operator email
// and a mail provider are configured.
func (a *App) StartJobs() error {
	if a.Config.Notify.AdminEmail == "" || !a.Mailer.Configured() {
		a.Log.Info("review digest disabled")
		return nil
	}
	c, err := utils.StartReviewDigest(a.Config.Notify.DigestCron, a.location, &utils.ReviewDigest{
		Reviews: a.Reviews,
		Mail:    a.Mailer,
		To:      a.Config.Notify.AdminEmail,
		SiteURL: a.Config.Notify.SiteBaseURL,
		Log:     a.Log.Named("digest"),
	})
	if err != nil {
		return err
	}
	a.digest = c
	return nil
}

// Close stops background work and releases connections.
func (a *App) Close() {
	if a.digest != nil {
		<-a.digest.Stop().Done()
	}
	a.Reviews.Wait()
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn("redis close failed", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
