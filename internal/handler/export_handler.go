package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hosfile/prepay-api/internal/service"
	"github.com/hosfile/prepay-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, hospital, format string) (*service.ExportResult, error)
}

// ExportHandler serves listing downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Download the submission listing as CSV or PDF
// @Tags Submissions
// @Produce octet-stream
// @Param format query string false "csv or pdf (default csv)"
// @Param hospital query string false "Hospital filter"
// @Success 200 {file} binary
// @Router /api/submissions/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	result, err := h.service.Export(c.Request.Context(), c.Query("hospital"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
