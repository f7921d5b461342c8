package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-management-api/internal/application"
	"github.com/oksasatya/user-management-api/internal/interface/middleware"
	"github.com/oksasatya/user-management-api/pkg/response"
	"github.com/oksasatya/user-management-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *userapp.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50,alphaspace"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,userpwd"`
	Age      *int   `json:"age" binding:"omitempty,gte=0,lte=150"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,userpwd"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  u.Public(),
		"token": token,
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"user":  u.Public(),
		"token": token,
	})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.", nil)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"user": u.Public()})
}

// UpdatePassword PATCH /api/auth/update-password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		response.Error(c, http.StatusUnauthorized, "Access denied. No token provided.", nil)
		return
	}
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	token, err := h.Svc.UpdatePassword(c.Request.Context(), u.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated successfully", gin.H{"token": token})
}
