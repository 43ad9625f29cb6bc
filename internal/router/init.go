package router

import (
	userapp "github.com/apitemplate/go-user-api/internal/application"
	"github.com/apitemplate/go-user-api/internal/container"
	"github.com/apitemplate/go-user-api/internal/infrastructure/mongodb"
	handlers "github.com/apitemplate/go-user-api/internal/interface/http"
	"github.com/apitemplate/go-user-api/internal/interface/middleware"
	"github.com/apitemplate/go-user-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	repo := mongodb.NewUserRepository(container.GetMongo())

	service := &userapp.Service{
		Repo:         repo,
		JWT:          container.GetJWT(),
		BcryptCost:   cfg.BcryptCost,
		Logger:       container.GetLogger(),
		Pub:          container.GetRabbitPub(),
		MailEnabled:  cfg.MailSendEnabled,
		ES:           container.GetES(),
		ESUsersIndex: cfg.ESUsersIndex,
		GCS:          container.GetGCS(),
		GCSBucket:    cfg.GCSBucket,
	}

	handler := handlers.NewUserHandler(service, container.GetLogger())

	// Standard limiter covers every route; the user module stacks a strict
	// instance on the credential endpoints.
	r.Use(middleware.RateLimit(container.GetLimitStore(), middleware.Options{
		Max:     cfg.RateLimitMax,
		Window:  cfg.RateLimitWindow,
		Prefix:  "rl",
		Message: "Too many requests from this IP, please try again later",
	}, middleware.KeyByClientIP(), nil))

	r.Add(modules.NewUserModule(handler, repo, container.GetJWT(), container.GetLimitStore(), cfg))
}
