package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/allergy-tracker/internal/apperror"
	"github.com/iliyamo/allergy-tracker/internal/auth"
	"github.com/iliyamo/allergy-tracker/internal/config"
	"github.com/iliyamo/allergy-tracker/internal/database"
	"github.com/iliyamo/allergy-tracker/internal/handler"
	"github.com/iliyamo/allergy-tracker/internal/middleware"
	"github.com/iliyamo/allergy-tracker/internal/queue"
	"github.com/iliyamo/allergy-tracker/internal/repository"
	"github.com/iliyamo/allergy-tracker/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	hasher := auth.NewHasher(cfg.PasswordPepper, cfg.BcryptCost)
	codec := auth.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	cookies := auth.NewSessionCookies(cfg.RefreshTokenTTL, cfg.CookieSecure)

	users := repository.NewUserRepo(db)
	entries := repository.NewEntryRepo(db)
	exposures := repository.NewExposureTypeRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperror.HTTPErrorHandler
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	// Credentialed CORS: the session cookie is only sent to the
	// configured origins.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(middleware.Authenticate(codec))

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache disabled")
	}
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(users, hasher, codec, cookies))
	router.RegisterAPI(e, handler.NewEntryHandler(entries, exposures),
		handler.NewExposureTypeHandler(exposures), cache)

	go queue.StartJournalConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
