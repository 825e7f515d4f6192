package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/service"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/response"
)

// AttendanceHandler exposes the daily call sheet.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

type toggleAttendanceRequest struct {
	StudentID string `json:"studentId"`
}

// Today returns the scoped roster with presence flags for today.
func (h *AttendanceHandler) Today(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	today, entries := h.attendance.TodayRoster(session)
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"date": today})
}

// Toggle flips today's presence for one student.
func (h *AttendanceHandler) Toggle(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req toggleAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StudentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}
	result, err := h.attendance.Toggle(session, req.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
