package task

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	tasks := rg.Group("/tasks")
	{
		tasks.GET("", handler.ListTasks)
		tasks.POST("", handler.CreateTask)
		tasks.PUT("/:id", handler.UpdateTask)
		tasks.DELETE("/:id", handler.DeleteTask)
		tasks.GET("/:id/activities", handler.GetTaskActivities)
	}
	rg.GET("/boards/:id/tasks", handler.GetBoardTasks)
}
