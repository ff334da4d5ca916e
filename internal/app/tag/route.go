package tag

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	tags := rg.Group("/tags")
	{
		tags.GET("", handler.ListTags)
		tags.POST("", handler.CreateTag)
		tags.DELETE("/:id", handler.DeleteTag)
	}
}
