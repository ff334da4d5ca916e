package board

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	boards := rg.Group("/boards")
	{
		boards.GET("", handler.ListBoards)
		boards.POST("", handler.CreateBoard)
		boards.GET("/:id", handler.GetBoard)
		boards.PUT("/:id", handler.UpdateBoard)
		boards.PUT("/:id/settings", handler.UpdateSettings)
		boards.DELETE("/:id", handler.DeleteBoard)
	}
}
