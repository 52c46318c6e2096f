package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicbook/booking-system/internal/api/handler"
	"github.com/clinicbook/booking-system/internal/api/middleware"
	"github.com/clinicbook/booking-system/internal/core/domain"
	"github.com/clinicbook/booking-system/internal/core/service"
	mongodb "github.com/clinicbook/booking-system/internal/infrastructure/db/mongo"
	redisdb "github.com/clinicbook/booking-system/internal/infrastructure/db/redis"
	healthhandlers "github.com/clinicbook/booking-system/internal/infrastructure/http/handlers"
)

// Options carries everything the router needs beyond the live connections.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// Location is the timezone appointment slots are interpreted in.
	Location *time.Location
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	doctorRepo := mongodb.NewDoctorRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	idem := redisdb.NewIdempotencyChecker(rdb)

	accountService := service.NewAccountService(userRepo, opts.JWTSecret, opts.TokenTTL, log)
	doctorService := service.NewDoctorService(doctorRepo, userRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, doctorRepo, userRepo, idem, opts.Location, log)

	accountHandler := handler.NewAccountHandler(accountService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)

	auth := middleware.Auth(opts.JWTSecret)
	doctorOnly := middleware.RBAC(domain.RoleDoctor, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	v1 := e.Group("/api/v1")

	// --- Account routes ---
	users := v1.Group("/users")
	users.POST("/register", accountHandler.Register)
	users.POST("/login", accountHandler.Login)
	users.GET("/me", accountHandler.Me, auth)
	users.GET("/notifications", accountHandler.MarkNotificationsSeen, auth)
	users.DELETE("/notifications", accountHandler.ClearNotifications, auth)
	users.PATCH("/apply-doctor", doctorHandler.Apply, auth)

	// --- Patient-facing booking routes ---
	v1.GET("/doctors", doctorHandler.ListApproved, auth)
	v1.POST("/appointments", appointmentHandler.Book, auth)
	v1.POST("/appointments/availability", appointmentHandler.CheckAvailability, auth)
	v1.GET("/appointments", appointmentHandler.ListMine, auth)

	// --- Doctor sub-API ---
	doctor := v1.Group("/doctor", auth, doctorOnly)
	doctor.GET("/profile", doctorHandler.Profile)
	doctor.PATCH("/profile", doctorHandler.UpdateProfile)
	doctor.GET("/appointments", appointmentHandler.ListForDoctor)
	doctor.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

	// --- Admin sub-API ---
	admin := v1.Group("/admin", auth, adminOnly)
	admin.GET("/users", accountHandler.ListUsers)
	admin.GET("/doctors", doctorHandler.List)
	admin.PATCH("/doctors/:id/status", doctorHandler.ChangeStatus)

	return e
}
