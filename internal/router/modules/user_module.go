package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

// UserModule wires the authenticated profile endpoints behind the bearer gate.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	user.Use(middleware.Auth(m.JWT))
	{
		user.PUT("/update-profile", m.Handler.UpdateProfile)
	}
}
