package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-management-api/internal/application"
	"github.com/oksasatya/user-management-api/pkg/response"
)

// fail is the single boundary converting service errors into the JSON
// envelope. Unknown errors are logged and presented as a generic server
// error; internal detail never reaches the client.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, "User with this email already exists", nil)
	case errors.Is(err, userapp.ErrWrongPassword):
		response.Error(c, http.StatusBadRequest, "Current password is incorrect", nil)
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, userapp.ErrAccountDeactivated):
		response.Error(c, http.StatusUnauthorized, "Your account has been deactivated", nil)
	case errors.Is(err, userapp.ErrForbidden):
		response.Error(c, http.StatusForbidden, "You do not have permission to perform this action", nil)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	default:
		if logger != nil {
			logger.WithError(err).Error("unhandled request error")
		}
		response.Error(c, http.StatusInternalServerError, "Server error", nil)
	}
}
