package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/evjourney-backend-go/internal/service"
	"github.com/jengzang/evjourney-backend-go/pkg/response"
)

// writeError maps service errors onto HTTP responses
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidSessionToken):
		response.Error(c, http.StatusUnauthorized, "Invalid or expired session token", err)
	case errors.Is(err, service.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "Session not found, please upload the file again", err)
	case errors.Is(err, service.ErrUnsupportedFormat):
		response.Error(c, http.StatusUnsupportedMediaType, "Unsupported file format, upload a .csv or .xlsx file", err)
	case errors.Is(err, service.ErrDecode):
		response.Error(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrEmptyUpload):
		response.Error(c, http.StatusBadRequest, "The uploaded file contains no rows", err)
	case errors.Is(err, service.ErrNoValidTrips):
		response.Error(c, http.StatusUnprocessableEntity, "No trips with a positive distance were found", err)
	case errors.Is(err, service.ErrUnknownChart):
		response.Error(c, http.StatusNotFound, "Unknown chart", err)
	default:
		response.InternalError(c, fallback, err)
	}
}
