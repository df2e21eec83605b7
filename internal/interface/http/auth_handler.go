package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.Service
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req validation.SignupFields
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Message{Msg: validation.JoinMessages(err)})
		return
	}

	_, otp, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
		DOB:      req.DOB,
		Gender:   req.Gender,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	// OTP in the body stands in for an SMS gateway; see response.Signup.
	c.JSON(http.StatusCreated, response.Signup{Msg: "User registered. OTP sent to mobile.", OTP: otp})
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

// VerifyOTP POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Message{Msg: bindMsg(err, "Mobile and OTP are required")})
		return
	}

	token, exp, err := h.Svc.VerifyOTP(c.Request.Context(), req.Mobile, req.OTP)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Cookies.SetToken(c, token, exp)
	c.JSON(http.StatusOK, response.Token{Token: token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Message{Msg: bindMsg(err, "Email and password are required")})
		return
	}

	_, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Cookies.SetToken(c, token, exp)
	c.JSON(http.StatusOK, response.Login{Success: true, Message: "Login successful", Token: token})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Message{Msg: bindMsg(err, "Email is required")})
		return
	}

	otp, err := h.Svc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ForgotPassword{Msg: "OTP sent to email.", OTP: otp})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPassword POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Message{Msg: bindMsg(err, "Email, OTP, and new password are required")})
		return
	}

	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message{Msg: "Password reset successful"})
}

// SignOut GET /api/auth/signout
// Clears the client-held cookie only; issued tokens stay valid until expiry.
func (h *AuthHandler) SignOut(c *gin.Context) {
	h.Cookies.Clear(c)
	c.JSON(http.StatusOK, "User has been logged out!")
}

// fail maps service sentinels onto the user-facing messages. Unknown faults
// log server-side and surface as a generic 500.
func (h *AuthHandler) fail(c *gin.Context, err error) {
	var msg string
	switch {
	case errors.Is(err, application.ErrAccountExists):
		msg = "User already exists"
	case errors.Is(err, application.ErrInvalidMobileOrOTP):
		msg = "Invalid mobile number or OTP"
	case errors.Is(err, application.ErrInvalidOTP):
		msg = "Invalid OTP"
	case errors.Is(err, application.ErrInvalidCredentials):
		msg = "Invalid credentials"
	case errors.Is(err, application.ErrInvalidEmail):
		msg = "Invalid email"
	case errors.Is(err, application.ErrInvalidEmailOrOTP):
		msg = "Invalid email or OTP"
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("auth request failed")
		}
		c.JSON(http.StatusInternalServerError, response.Message{Msg: "Server error"})
		return
	}
	c.JSON(http.StatusBadRequest, response.Message{Msg: msg})
}

func bindMsg(err error, required string) string {
	if errors.Is(err, io.EOF) {
		return "Request body cannot be empty, Unauthorized"
	}
	return required
}
