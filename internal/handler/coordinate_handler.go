package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsarabia/fn-location/internal/domain"
	"github.com/jsarabia/fn-location/internal/service"
)

type CoordinateHandler struct {
	manager *service.CoordinateManager
}

func NewCoordinateHandler(manager *service.CoordinateManager) *CoordinateHandler {
	return &CoordinateHandler{
		manager: manager,
	}
}

// ManualEditRequest carries the raw text from the latitude/longitude fields.
// Values are strings on purpose: parsing and validation belong to the
// manager, not the transport.
type ManualEditRequest struct {
	Latitude  string `json:"latitude" binding:"required"`
	Longitude string `json:"longitude" binding:"required"`
}

type CoordinateResponse struct {
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	FormattedLatitude  string  `json:"formatted_latitude"`
	FormattedLongitude string  `json:"formatted_longitude"`
}

type StatusResponse struct {
	Coordinate    CoordinateResponse `json:"coordinate"`
	Loading       bool               `json:"loading"`
	Authorization string             `json:"authorization"`
	Phase         string             `json:"phase"`
	Message       string             `json:"message,omitempty"`
}

func toCoordinateResponse(c domain.Coordinate) CoordinateResponse {
	return CoordinateResponse{
		Latitude:           c.Latitude,
		Longitude:          c.Longitude,
		FormattedLatitude:  c.FormattedLatitude(),
		FormattedLongitude: c.FormattedLongitude(),
	}
}

func (h *CoordinateHandler) GetCoordinates(c *gin.Context) {
	c.JSON(http.StatusOK, toCoordinateResponse(h.manager.CurrentCoordinate()))
}

func (h *CoordinateHandler) UpdateCoordinates(c *gin.Context) {
	var req ManualEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coordinate, err := h.manager.ApplyManualEdit(req.Latitude, req.Longitude)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCoordinateResponse(coordinate))
}

// RefreshCoordinates kicks off a provider-driven refresh. The result arrives
// asynchronously via the status and stream endpoints, so this returns 202.
func (h *CoordinateHandler) RefreshCoordinates(c *gin.Context) {
	h.manager.RequestLocation()
	c.JSON(http.StatusAccepted, h.statusResponse())
}

func (h *CoordinateHandler) SetMockLocation(c *gin.Context) {
	coordinate := h.manager.SetMockLocation()
	c.JSON(http.StatusOK, toCoordinateResponse(coordinate))
}

func (h *CoordinateHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.statusResponse())
}

func (h *CoordinateHandler) statusResponse() StatusResponse {
	s := h.manager.Status()
	return StatusResponse{
		Coordinate:    toCoordinateResponse(s.Coordinate),
		Loading:       s.Loading,
		Authorization: s.Authorization.String(),
		Phase:         s.Phase.String(),
		Message:       s.Message,
	}
}

// StreamCoordinates serves the committed-coordinate stream over SSE. The
// current value is sent immediately, then every commit until the client
// disconnects. A slow client drops updates instead of blocking the manager.
func (h *CoordinateHandler) StreamCoordinates(c *gin.Context) {
	updates := make(chan domain.CoordinateChange, 16)
	cancel := h.manager.Coordinates().Subscribe(func(change domain.CoordinateChange) {
		select {
		case updates <- change:
		default:
		}
	})
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("coordinate", toCoordinateResponse(h.manager.CurrentCoordinate()))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case change := <-updates:
			c.SSEvent("coordinate", toCoordinateResponse(change.Coordinate))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
