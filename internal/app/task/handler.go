package task

import (
	"net/http"
	"strconv"

	"flowboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

type CurrentUserID func(c *gin.Context) (uint64, bool)

type Handler interface {
	CreateTask(c *gin.Context)
	UpdateTask(c *gin.Context)
	DeleteTask(c *gin.Context)
	ListTasks(c *gin.Context)
	GetBoardTasks(c *gin.Context)
	GetTaskActivities(c *gin.Context)
}

type handler struct {
	service Service
	userID  CurrentUserID
}

func NewHandler(service Service, userID CurrentUserID) Handler {
	return &handler{service: service, userID: userID}
}

// @Summary Create task
// @Description Create a task on a board and record a "created" activity
// @Tags Task
// @Accept json
// @Produce json
// @Param task body CreateTaskRequest true "Task fields"
// @Success 201 {object} Task
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/tasks [post]
func (h *handler) CreateTask(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.service.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary Update task
// @Description Apply a partial update; a status change records a "moved" activity, other changes an "updated" one
// @Tags Task
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param task body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} Task
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tasks/{id} [put]
func (h *handler) UpdateTask(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task ID"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.service.UpdateTask(c.Request.Context(), userID, taskID, req)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary Delete task
// @Description Delete a task and cascade its comments, activities and tag links
// @Tags Task
// @Param id path int true "Task ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tasks/{id} [delete]
func (h *handler) DeleteTask(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task ID"})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List tasks
// @Description Cross-board task list with filters, sorting and pagination
// @Tags Task
// @Produce json
// @Param board_id query int false "Filter by board"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param tag_id query int false "Filter by tag"
// @Param sort_by query string false "created_at|due_date|priority|title"
// @Param sort_order query string false "asc|desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/tasks [get]
func (h *handler) ListTasks(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	q := ListQuery{
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	if v := c.Query("board_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board_id"})
			return
		}
		q.BoardID = &id
	}
	if v := c.Query("status"); v != "" {
		st := Status(v)
		if !st.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
			return
		}
		q.Status = &st
	}
	if v := c.Query("priority"); v != "" {
		p := Priority(v)
		if !p.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid priority"})
			return
		}
		q.Priority = &p
	}
	if v := c.Query("tag_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tag_id"})
			return
		}
		q.TagID = &id
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	tasks, total, err := h.service.ListTasks(c.Request.Context(), userID, q)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	totalPages := (total + int64(q.Limit) - 1) / int64(q.Limit)

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"pagination": gin.H{
			"page":       q.Page,
			"limit":      q.Limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// @Summary Get board tasks
// @Description All tasks of a board, newest first (cached)
// @Tags Task
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {array} Task
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id}/tasks [get]
func (h *handler) GetBoardTasks(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board ID"})
		return
	}

	tasks, err := h.service.GetTasksByBoardID(c.Request.Context(), userID, boardID)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// @Summary List task activities
// @Description Audit trail of a task, newest first
// @Tags Task
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {array} activity.Activity
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tasks/{id}/activities [get]
func (h *handler) GetTaskActivities(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid task ID"})
		return
	}

	activities, err := h.service.GetTaskActivities(userID, taskID)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, activities)
}
