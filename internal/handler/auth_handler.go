package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/service"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

type staffLoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AdminLogin authenticates with the master password.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	res, err := h.service.AuthenticateAdministrator(req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// StaffLogin authenticates a staff member by name and password.
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req staffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	res, err := h.service.AuthenticateStaff(req.Name, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Logout revokes the calling session's token.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(tokenFromContext(c))
	response.NoContent(c)
}

// Me returns the calling session.
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, session)
}
