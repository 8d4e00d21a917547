package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/comitanigiacomo/studylog-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/studylog-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/studylog-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/studylog-engine/internal/config"
	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
	"github.com/comitanigiacomo/studylog-engine/internal/core/services"
	"github.com/comitanigiacomo/studylog-engine/internal/core/workers"
)

type application struct {
	router *gin.Engine
	worker *workers.StreakWorker
}

// newApplication wires every layer. rdb may be nil: the entry cache and the
// rate limiter are then skipped and short-lived auth state lives in memory.
func newApplication(cfg *config.Config, db *sqlx.DB, rdb *redis.Client, startTime time.Time) *application {
	userRepo := repository.NewPostgresUserRepository(db.DB)

	var entryRepo domain.LogEntryRepository = repository.NewPostgresLogEntryRepository(db)

	var (
		states      domain.OAuthStateStore
		revocations domain.TokenRevocationStore
	)
	if rdb != nil {
		entryRepo = repository.NewCachedLogEntryRepository(entryRepo, rdb)
		states = cache.NewRedisOAuthStateStore(rdb)
		revocations = cache.NewRedisTokenRevocationStore(rdb)
	} else {
		states = cache.NewMemoryOAuthStateStore()
		revocations = cache.NewMemoryTokenRevocationStore()
	}

	streakWorker := workers.NewStreakWorker(userRepo, entryRepo)

	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, userRepo, revocations)
	authService := services.NewAuthService(userRepo, tokenService)
	entryService := services.NewEntryService(entryRepo, streakWorker, cfg.App.TableLimit)
	summaryService := services.NewSummaryService(entryRepo, userRepo)
	exportService := services.NewExportService(entryRepo)

	var oauthService *services.OAuthService
	if cfg.OAuth.Enabled() {
		oauthService = services.NewOAuthService(domain.ProviderGoogle, googleConfig(cfg.OAuth), userInfoURL(cfg.OAuth),
			states, userRepo, tokenService)
		log.Println("[AUTH] Google sign-in enabled.")
	} else {
		log.Println("[AUTH] Google sign-in disabled (GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set).")
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService, oauthService, cfg.OAuth.FrontendURL),
		EntryHandler:     adapterHTTP.NewEntryHandler(entryService),
		SummaryHandler:   adapterHTTP.NewSummaryHandler(summaryService, exportService),
		DashboardHandler: adapterHTTP.NewDashboardHandler(authService, entryService, cfg.App.Copy),
		DatesHandler:     adapterHTTP.NewDatesHandler(),
		TokenValidator:   tokenService,
		RateLimit:        cfg.RateLimit,
		DB:               db,
		Redis:            rdb,
		StartTime:        startTime,
	})

	return &application{router: router, worker: streakWorker}
}

func googleConfig(o config.OAuthConfig) *oauth2.Config {
	endpoint := google.Endpoint
	if o.AuthURL != "" {
		endpoint.AuthURL = o.AuthURL
	}
	if o.TokenURL != "" {
		endpoint.TokenURL = o.TokenURL
	}

	return &oauth2.Config{
		ClientID:     o.GoogleClientID,
		ClientSecret: o.GoogleClientSecret,
		RedirectURL:  o.RedirectURL,
		Scopes:       []string{"openid", "email"},
		Endpoint:     endpoint,
	}
}

func userInfoURL(o config.OAuthConfig) string {
	if o.UserInfoURL != "" {
		return o.UserInfoURL
	}
	return services.GoogleUserInfoURL
}
