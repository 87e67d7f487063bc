package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jsarabia/fn-location/internal/service"
)

func SetupRoutes(router *gin.RouterGroup, manager *service.CoordinateManager) {
	coordinateHandler := NewCoordinateHandler(manager)

	coordinates := router.Group("/coordinates")
	{
		coordinates.GET("", coordinateHandler.GetCoordinates)
		coordinates.PUT("", coordinateHandler.UpdateCoordinates)
		coordinates.POST("/refresh", coordinateHandler.RefreshCoordinates)
		coordinates.POST("/mock", coordinateHandler.SetMockLocation)
		coordinates.GET("/status", coordinateHandler.GetStatus)
		coordinates.GET("/stream", coordinateHandler.StreamCoordinates)
	}
}
