package router // package router defines how HTTP routes are registered for the API

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/photo-gallery/internal/config"
	"github.com/iliyamo/photo-gallery/internal/handler"
	"github.com/iliyamo/photo-gallery/internal/logging"
	"github.com/iliyamo/photo-gallery/internal/metrics"
	"github.com/iliyamo/photo-gallery/internal/middleware"
	"github.com/iliyamo/photo-gallery/internal/validation"
)

// Deps is everything the route table needs. Redis may be nil; rate limiting
// and caching then degrade as described in the middleware package.
type Deps struct {
	Log     logging.Logger
	Tokens  middleware.TokenVerifier
	Auth    *handler.AuthHandler
	Gallery *handler.GalleryHandler
	Photos  *handler.PhotoHandler
	DB      handler.Pinger

	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig

	UploadDir string // local uploads served at /uploads, empty when using S3
	PublicDir string // static front end, empty disables
}

// New builds the Echo instance with the shared middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(d.Log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(d.Log))

	RegisterRoutes(e, d)
	RegisterAuth(e, d)
	RegisterUser(e, d)
	RegisterAdmin(e, d)
	RegisterStatic(e, d)
	return e
}

// RegisterRoutes registers unauthenticated service routes: health checks,
// metrics and the public photo catalog.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(d.DB))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	e.GET("/api/photos", d.Photos.List, cache)
	e.GET("/api/photos/:id", d.Photos.Get, cache)
}

// RegisterAuth registers the token-issuing endpoints. They are the only
// routes behind the rate limiter.
func RegisterAuth(e *echo.Echo, d Deps) {
	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	e.POST("/api/admin/login", d.Auth.AdminLogin, limit)
	e.POST("/api/user/register", d.Auth.Register, limit)
	e.POST("/api/user/login", d.Auth.Login, limit)
}

// RegisterUser registers endpoints that require a user token. Handlers read
// the owner from the verified token only.
func RegisterUser(e *echo.Echo, d Deps) {
	g := e.Group("/api/user", middleware.UserAuth(d.Tokens))

	g.GET("/profile", d.Auth.Profile)

	g.GET("/favorites", d.Gallery.ListFavorites)
	g.POST("/favorites", d.Gallery.AddFavorite)
	g.DELETE("/favorites/:photoId", d.Gallery.RemoveFavorite)

	g.GET("/collections", d.Gallery.ListCollections)
	g.POST("/collections", d.Gallery.CreateCollection)
	g.POST("/collections/:id/photos", d.Gallery.AddPhotoToCollection)
}

// RegisterAdmin registers endpoints that require an admin token.
func RegisterAdmin(e *echo.Echo, d Deps) {
	guard := middleware.AdminAuth(d.Tokens)

	// Multipart framing needs some room on top of the file itself.
	bodyLimit := d.Photos.MaxBytes + 1<<20
	e.POST("/api/upload", d.Photos.Upload,
		guard,
		echomw.BodyLimit(strconv.FormatInt(bodyLimit, 10)),
		middleware.InvalidateCache(d.Cache, d.Redis),
	)
	e.GET("/api/admin/stats", d.Photos.Stats, guard)
}

// RegisterStatic serves uploaded files and the static front end.
func RegisterStatic(e *echo.Echo, d Deps) {
	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}
	if d.PublicDir == "" {
		return
	}
	if _, err := os.Stat(d.PublicDir); err != nil {
		d.Log.Warn(context.Background(), "public dir not found, static front end disabled", "dir", d.PublicDir)
		return
	}
	e.File("/admin", filepath.Join(d.PublicDir, "admin.html"))
	e.Static("/", d.PublicDir)
}
