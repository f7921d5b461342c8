package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-management-api/internal/application"
	"github.com/oksasatya/user-management-api/internal/domain/entity"
	"github.com/oksasatya/user-management-api/internal/interface/middleware"
	"github.com/oksasatya/user-management-api/pkg/response"
	"github.com/oksasatya/user-management-api/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// pathID validates the :id parameter as the store's native UUID encoding
// before it ever reaches the store.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID format", nil)
		return "", false
	}
	return id, true
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	q, fields, err := parseListQuery(c.Request.URL.Query())
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", gin.H{"query": err.Error()})
		return
	}
	users, total, err := h.Svc.List(q)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Project(fields))
	}
	response.Paginated(c, "", gin.H{"users": out}, response.NewPagination(q.Page, q.Limit, total))
}

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetByID(id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"user": u.Public()})
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50,alphaspace"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,userpwd"`
	Age      *int   `json:"age" binding:"omitempty,gte=0,lte=150"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	IsActive *bool  `json:"isActive"`
}

// Create POST /api/users (admin only)
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	admin := middleware.CurrentUser(c)
	u, err := h.Svc.AdminCreate(admin.ID, userapp.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Role:     entity.Role(req.Role),
		IsActive: req.IsActive,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "User created successfully", gin.H{"user": u.Public()})
}

// updateUserRequest deliberately has no password or role fields; any such
// values in the payload are dropped before the merge.
type updateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=50,alphaspace"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Age      *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
	IsActive *bool   `json:"isActive"`
}

// Update PATCH /api/users/:id (self or admin)
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}
	caller := middleware.CurrentUser(c)
	u, err := h.Svc.Update(caller, id, userapp.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Age:      req.Age,
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, userapp.ErrForbidden) {
			response.Error(c, http.StatusForbidden, "You can only update your own profile", nil)
			return
		}
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "User updated successfully", gin.H{"user": u.Public()})
}

// Delete DELETE /api/users/:id (admin only)
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	admin := middleware.CurrentUser(c)
	if err := h.Svc.Delete(admin.ID, id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Deactivate PATCH /api/users/:id/deactivate (admin only)
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	admin := middleware.CurrentUser(c)
	u, err := h.Svc.Deactivate(admin.ID, id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "User deactivated successfully", gin.H{"user": u.Public()})
}
