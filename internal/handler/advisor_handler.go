package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/service"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/response"
)

// AdvisorHandler exposes the AI advisor endpoints.
type AdvisorHandler struct {
	advisor *service.AdvisorService
}

// NewAdvisorHandler constructs AdvisorHandler.
func NewAdvisorHandler(advisor *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor}
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask forwards a question to the advisor with the session's data as
// context.
func (h *AdvisorHandler) Ask(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	answer, err := h.advisor.Ask(c.Request.Context(), session, req.Question)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"answer": answer})
}

// Insights returns the structured management report.
func (h *AdvisorHandler) Insights(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	insights, err := h.advisor.GenerateInsights(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, insights)
}
