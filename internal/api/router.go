package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/swa1245/course-market/docs"
	"github.com/swa1245/course-market/internal/api/handler"
	"github.com/swa1245/course-market/internal/api/middleware"
	"github.com/swa1245/course-market/internal/core/service"
	"github.com/swa1245/course-market/internal/core/token"
	"github.com/swa1245/course-market/internal/infrastructure/config"
	mongodb "github.com/swa1245/course-market/internal/infrastructure/db/mongo"
	redisdb "github.com/swa1245/course-market/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *goredis.Client,
	publisher service.EventPublisher,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("coursemarket"))

	// --- Dependencies ---
	issuer := token.NewIssuer(cfg.JWTUserSecret, cfg.JWTAdminSecret, token.DefaultTTL)

	userRepo := mongodb.NewUserRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	purchaseRepo := mongodb.NewPurchaseRepository(db)
	catalogCache := redisdb.NewCatalogCache(rdb, log)

	userAuth := service.NewAuthService(userRepo, issuer, token.ScopeUser)
	adminAuth := service.NewAuthService(adminRepo, issuer, token.ScopeAdmin)
	courseService := service.NewCourseService(courseRepo, catalogCache, log)
	purchaseService := service.NewPurchaseService(purchaseRepo, courseRepo, publisher, log)

	userHandler := handler.NewAuthHandler(userAuth, "User", string(token.ScopeUser))
	adminHandler := handler.NewAuthHandler(adminAuth, "Admin", string(token.ScopeAdmin))
	courseHandler := handler.NewCourseHandler(courseService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)

	userGate := middleware.Auth(issuer, token.ScopeUser)
	adminGate := middleware.Auth(issuer, token.ScopeAdmin)

	// --- User routes ---
	user := e.Group("/api/v1/user")
	user.POST("/signup", userHandler.Signup)
	user.POST("/login", userHandler.Login)
	user.GET("/purchases", purchaseHandler.List, userGate)

	// --- Admin routes ---
	admin := e.Group("/api/v1/admin")
	admin.POST("/signup", adminHandler.Signup)
	admin.POST("/signin", adminHandler.Login)
	admin.POST("/course", courseHandler.Create, adminGate)
	admin.PUT("/course", courseHandler.Update, adminGate)
	admin.GET("/course/bulk", courseHandler.ListOwn, adminGate)

	// --- Course routes ---
	course := e.Group("/api/v1/course")
	course.POST("/purchase", purchaseHandler.Purchase, userGate)
	course.GET("/preview", courseHandler.Preview)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
