package comment

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/tasks/:id/comments", handler.ListComments)
	rg.POST("/tasks/:id/comments", handler.CreateComment)
	rg.DELETE("/comments/:id", handler.DeleteComment)
}
