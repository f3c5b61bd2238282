package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/evjourney-backend-go/internal/export"
	"github.com/jengzang/evjourney-backend-go/internal/service"
	"github.com/jengzang/evjourney-backend-go/pkg/response"
)

// ExportHandler handles file downloads of filtered trips
type ExportHandler struct {
	service *service.JourneyService
	now     func() time.Time
}

// NewExportHandler creates a new export handler
func NewExportHandler(service *service.JourneyService) *ExportHandler {
	return &ExportHandler{service: service, now: time.Now}
}

// ExportCSV handles GET /api/v1/journeys/export.csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(&buf, currentSession(c), criteria); err != nil {
		response.InternalError(c, "Failed to export trips", err)
		return
	}

	attachment(c, export.Filename(h.now()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportPDF handles GET /api/v1/journeys/export.pdf
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	now := h.now()
	var buf bytes.Buffer
	if err := h.service.ExportPDF(&buf, currentSession(c), criteria, now); err != nil {
		response.InternalError(c, "Failed to render summary", err)
		return
	}

	attachment(c, export.PDFFilename(now))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
