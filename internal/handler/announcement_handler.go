package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/service"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/response"
)

// AnnouncementHandler exposes the board endpoints.
type AnnouncementHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementHandler constructs AnnouncementHandler.
func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// List returns the board, most recent first.
func (h *AnnouncementHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.announcements.List())
}

// Post creates an announcement.
func (h *AnnouncementHandler) Post(c *gin.Context) {
	var req service.PostAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	post, err := h.announcements.Post(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// Delete removes an announcement; the caller confirms with ?confirm=true.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "deletion must be explicitly confirmed"))
		return
	}
	if err := h.announcements.Delete(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
