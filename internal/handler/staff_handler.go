package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/service"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/response"
)

// StaffHandler exposes the administrator-only team endpoints.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List returns the teaching team.
func (h *StaffHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.staff.List())
}

// Register creates an active staff account.
func (h *StaffHandler) Register(c *gin.Context) {
	var req service.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	member, err := h.staff.Register(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// ToggleLock flips a staff account's active flag.
func (h *StaffHandler) ToggleLock(c *gin.Context) {
	member, err := h.staff.ToggleLock(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member)
}
