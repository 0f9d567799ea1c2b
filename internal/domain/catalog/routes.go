package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	services := api.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/by-name/:name", h.GetServiceByName)
	}
}
