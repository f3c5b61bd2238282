package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/evjourney-backend-go/internal/models"
	"github.com/jengzang/evjourney-backend-go/internal/service"
	"github.com/jengzang/evjourney-backend-go/pkg/response"
)

// JourneyHandler handles HTTP requests for imported journey logs
type JourneyHandler struct {
	service        *service.JourneyService
	maxUploadBytes int64
}

// NewJourneyHandler creates a new journey handler
func NewJourneyHandler(service *service.JourneyService, maxUploadBytes int64) *JourneyHandler {
	return &JourneyHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Import handles POST /api/v1/journeys/import
func (h *JourneyHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "Uploaded file is too large", err)
			return
		}
		response.Error(c, http.StatusBadRequest, "Missing file upload", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "Failed to read upload", err)
		return
	}
	defer file.Close()

	result, err := h.service.Import(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		writeError(c, err, "Failed to import journey log")
		return
	}

	response.Success(c, result)
}

// bindCriteria binds the filter query parameters
func bindCriteria(c *gin.Context) (models.FilterCriteria, bool) {
	var q models.FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid filter parameters", err)
		return models.FilterCriteria{}, false
	}
	criteria, err := q.Criteria()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), err)
		return models.FilterCriteria{}, false
	}
	return criteria, true
}

// GetTrips handles GET /api/v1/journeys/trips
func (h *JourneyHandler) GetTrips(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	var table models.TableQuery
	if err := c.ShouldBindQuery(&table); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid table parameters", err)
		return
	}

	sess := currentSession(c)
	trips := h.service.Table(sess, criteria, table)

	response.Success(c, gin.H{
		"data":          h.service.Rows(trips),
		"total":         len(trips),
		"datasetTotal":  len(sess.Trips),
		"activeFilters": criteria.ActiveCount(),
	})
}

// GetStatistics handles GET /api/v1/journeys/statistics.
// Data is omitted when no trip matches the filters.
func (h *JourneyHandler) GetStatistics(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	stats := h.service.Statistics(currentSession(c), criteria)
	if stats == nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, stats)
}

// GetChart handles GET /api/v1/journeys/charts/:chart
func (h *JourneyHandler) GetChart(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	var q models.ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid chart parameters", err)
		return
	}

	data, err := h.service.Chart(currentSession(c), c.Param("chart"), criteria, q)
	if err != nil {
		writeError(c, err, "Failed to build chart")
		return
	}
	response.Success(c, data)
}

// GetBounds handles GET /api/v1/journeys/bounds
func (h *JourneyHandler) GetBounds(c *gin.Context) {
	response.Success(c, h.service.Bounds(currentSession(c)))
}

// GetMap handles GET /api/v1/journeys/map
func (h *JourneyHandler) GetMap(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	var q models.MapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid map parameters", err)
		return
	}

	response.Success(c, h.service.Map(currentSession(c), criteria, q))
}

// GetCost handles GET /api/v1/journeys/cost
func (h *JourneyHandler) GetCost(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	var params models.CostParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid cost parameters", err)
		return
	}

	response.Success(c, h.service.Cost(currentSession(c), criteria, params))
}
