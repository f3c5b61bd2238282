package handler

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/evjourney-backend-go/internal/models"
	"github.com/jengzang/evjourney-backend-go/internal/service"
	"github.com/jengzang/evjourney-backend-go/pkg/response"
)

var fingerprintPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// AnnotationHandler handles HTTP requests for trip annotations
type AnnotationHandler struct {
	service *service.AnnotationService
}

// NewAnnotationHandler creates a new annotation handler
func NewAnnotationHandler(service *service.AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{service: service}
}

// fingerprint validates the :fingerprint path parameter
func fingerprint(c *gin.Context) (string, bool) {
	fp := c.Param("fingerprint")
	if !fingerprintPattern.MatchString(fp) {
		response.BadRequest(c, "Invalid trip fingerprint")
		return "", false
	}
	return fp, true
}

// GetAnnotation handles GET /api/v1/annotations/:fingerprint
func (h *AnnotationHandler) GetAnnotation(c *gin.Context) {
	fp, ok := fingerprint(c)
	if !ok {
		return
	}
	response.Success(c, h.service.Get(fp))
}

// PutAnnotation handles PUT /api/v1/annotations/:fingerprint
func (h *AnnotationHandler) PutAnnotation(c *gin.Context) {
	fp, ok := fingerprint(c)
	if !ok {
		return
	}

	var req models.AnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid annotation", err)
		return
	}

	saved, err := h.service.Save(c.Request.Context(), fp, req)
	if err != nil {
		response.InternalError(c, "Failed to save annotation", err)
		return
	}
	response.Success(c, saved)
}

// GetTags handles GET /api/v1/annotations/tags
func (h *AnnotationHandler) GetTags(c *gin.Context) {
	response.Success(c, h.service.Tags())
}
