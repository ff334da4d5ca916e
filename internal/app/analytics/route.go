package analytics

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/analytics", handler.GetBoardMetrics)
	rg.GET("/dashboard", handler.GetDashboard)
}
