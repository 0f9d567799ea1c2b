package assistant

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public assistant endpoints. limit, when set,
// guards the chat call.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limit gin.HandlerFunc) {
	chat := []gin.HandlerFunc{h.Chat}
	if limit != nil {
		chat = append([]gin.HandlerFunc{limit}, chat...)
	}

	ai := api.Group("/AI")
	{
		ai.POST("/chat/", chat...)
		ai.GET("/services/by-name/:name/", h.ServiceByName)
	}
}
