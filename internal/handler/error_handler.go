package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsarabia/fn-location/internal/domain"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

// HandleError maps domain errors to appropriate HTTP responses
func HandleError(c *gin.Context, err error) {
	var locErr domain.LocationError

	switch {
	case errors.As(err, &locErr):
		handleLocationError(c, locErr)
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}

func handleLocationError(c *gin.Context, err domain.LocationError) {
	resp := ErrorResponse{
		Error: err.Message,
		Code:  string(err.Code),
	}
	if field, ok := err.Details["field"].(string); ok {
		resp.Field = field
	}

	switch err.Code {
	case domain.LocationErrorParse:
		c.JSON(http.StatusBadRequest, resp)
	case domain.LocationErrorRange:
		c.JSON(http.StatusUnprocessableEntity, resp)
	case domain.LocationErrorPermissionDenied:
		c.JSON(http.StatusForbidden, resp)
	case domain.LocationErrorServiceUnavailable:
		c.JSON(http.StatusServiceUnavailable, resp)
	case domain.LocationErrorTransientProvider:
		c.JSON(http.StatusBadGateway, resp)
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
