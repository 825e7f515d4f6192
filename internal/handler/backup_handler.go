package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/service"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
	"github.com/Dojohubcloud/Ossjiujitsu/pkg/response"
)

// maxBackupSize bounds uploaded backup files.
const maxBackupSize = 16 << 20

// BackupHandler exposes the export/import endpoints.
type BackupHandler struct {
	backup *service.BackupService
}

// NewBackupHandler constructs BackupHandler.
func NewBackupHandler(backup *service.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

// Export streams the current document as a JSON download.
func (h *BackupHandler) Export(c *gin.Context) {
	backup, err := h.backup.Export(models.Today())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.Filename))
	c.Data(http.StatusOK, "application/json", backup.Payload)
}

// Import replaces the entire document with the uploaded backup. The
// destructive replace must be acknowledged with ?confirm=true.
func (h *BackupHandler) Import(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrMalformedPayload.Code, appErrors.ErrMalformedPayload.Status, "failed to read backup payload"))
		return
	}
	if err := h.backup.Import(payload, confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"restored": true})
}
