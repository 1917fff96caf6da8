package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/httpresp"
	"github.com/BruksfildServices01/medagenda/internal/middleware"
)

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List returns the caller's own trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rows, err := h.logs.ListForUser(c.Request.Context(), middleware.ActorFrom(c).UserID, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, rows)
}
