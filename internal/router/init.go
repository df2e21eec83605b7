package router

import (
	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/container"
	"github.com/oksasatya/go-account-service/internal/infrastructure/mongodb"
	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup after the container is filled.
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	store := mongodb.NewAccountStore(container.GetMongoDB())
	svc := application.NewService(
		store,
		container.GetJWT(),
		container.GetLogger(),
		cfg.OTPTTL,
		cfg.BcryptCost,
	)

	authHandler := handlers.NewAuthHandler(svc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(svc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
}
