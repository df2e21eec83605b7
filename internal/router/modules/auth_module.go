package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
)

// AuthModule wires the credential lifecycle endpoints.
// All of them are public; signout only clears the client cookie.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", m.Handler.Signup)
		auth.POST("/verify-otp", m.Handler.VerifyOTP)
		auth.POST("/login", m.Handler.Login)
		auth.POST("/forgot-password", m.Handler.ForgotPassword)
		auth.POST("/reset-password", m.Handler.ResetPassword)
		auth.GET("/signout", m.Handler.SignOut)
	}
}
