// file: internals/route/index.go
package route

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sirumah_backend/internals/configs"
	dashboardRoute "sirumah_backend/internals/features/dashboard/route"
	dashboardService "sirumah_backend/internals/features/dashboard/service"
	housingRoute "sirumah_backend/internals/features/housing/route"
	housingService "sirumah_backend/internals/features/housing/service"
	authRoute "sirumah_backend/internals/features/users/auth/route"
	authService "sirumah_backend/internals/features/users/auth/service"
	userRoute "sirumah_backend/internals/features/users/user/route"
	userService "sirumah_backend/internals/features/users/user/service"
	helper "sirumah_backend/internals/helpers"
	"sirumah_backend/internals/helpers/dbtime"
	"sirumah_backend/internals/middlewares"
	authMiddleware "sirumah_backend/internals/middlewares/auth"
)

var startTime = time.Now()

// Deps: semua yang dibutuhkan untuk merakit app.
type Deps struct {
	Cfg   configs.Config
	DB    *gorm.DB
	Log   *zap.Logger
	Clock dbtime.Clock
}

// NewApp merakit fiber app lengkap dengan middleware + routes.
func NewApp(d Deps) *fiber.App {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = dbtime.SystemClock{}
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.JsonFromError(c, d.Log, err)
		},
	})

	app.Use(middlewares.RequestLogger(d.Log.Named("http"), 5*time.Second))
	app.Use(middlewares.RecoveryMiddleware(d.Log))
	app.Use(middlewares.Metrics())
	app.Use(middlewares.CorsMiddleware(d.Cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	SetupRoutes(app, d)
	return app
}

func SetupRoutes(app *fiber.App, d Deps) {
	BaseRoutes(app, d.DB, d.Log)

	housing := housingService.New(d.DB, d.Clock, d.Log.Named("housing"))
	dashboard := dashboardService.New(housing)
	users := userService.New(d.DB, d.Log.Named("users"))
	auth := authService.New(d.DB, d.Cfg.JWTSecret, d.Cfg.JWTTTL, d.Clock, d.Log.Named("auth"))

	api := app.Group("/api", middlewares.GlobalRateLimiter())

	// 🔓 PUBLIC (didaftarkan sebelum AuthJWT)
	authRoute.AuthPublicRoutes(api, auth, users, d.Log)

	// 🔐 PRIVATE
	private := api.Group("", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Cfg.JWTSecret,
		DB:                  d.DB,
		Log:                 d.Log.Named("auth"),
		AllowCookieFallback: true,
	}))
	authRoute.AuthPrivateRoutes(private, auth, users, d.Log)
	dashboardRoute.DashboardRoutes(private, dashboard, d.Log)
	housingRoute.HousingRoutes(private, housing, d.Log)
	userRoute.UserAdminRoutes(private, users, d.Log)
}
