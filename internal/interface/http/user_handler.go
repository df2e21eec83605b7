package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/response"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Pointer fields keep absent and empty distinguishable: updates are partial,
// but a supplied field must not be empty.
type updateProfileRequest struct {
	Name    *string `json:"name"`
	Mobile  *string `json:"mobile"`
	DOB     *string `json:"dob"`
	Gender  *string `json:"gender"`
	Address *string `json:"address"`
}

func (r *updateProfileRequest) fields() []validation.Field {
	return []validation.Field{
		{Name: "name", Value: r.Name},
		{Name: "mobile", Value: r.Mobile},
		{Name: "dob", Value: r.DOB},
		{Name: "gender", Value: r.Gender},
		{Name: "address", Value: r.Address},
	}
}

func (r *updateProfileRequest) empty() bool {
	return r.Name == nil && r.Mobile == nil && r.DOB == nil && r.Gender == nil && r.Address == nil
}

// UpdateProfile PUT /api/user/update-profile (authenticated)
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusUnauthorized, response.Status{Success: false, Message: "Request body cannot be empty, Unauthorized!"})
			return
		}
		c.JSON(http.StatusBadRequest, response.Status{Success: false, Message: "Invalid request body"})
		return
	}
	if req.empty() {
		c.JSON(http.StatusUnauthorized, response.Status{Success: false, Message: "Request body cannot be empty, Unauthorized!"})
		return
	}

	if empty := validation.EmptyProvided(req.fields()); len(empty) > 0 {
		c.JSON(http.StatusBadRequest, response.Status{Success: false, Message: strings.Join(empty, ", ") + " cannot be empty if provided"})
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:    req.Name,
		Mobile:  req.Mobile,
		DOB:     req.DOB,
		Gender:  req.Gender,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, application.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, response.Status{Success: false, Message: "User not found"})
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("profile update failed")
		}
		c.JSON(http.StatusInternalServerError, response.Status{Success: false, Message: "Server error"})
		return
	}
	c.JSON(http.StatusOK, response.Profile{Success: true, User: u})
}
