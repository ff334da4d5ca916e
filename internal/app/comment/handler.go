package comment

import (
	"net/http"
	"strconv"

	"flowboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

type CurrentUserID func(c *gin.Context) (uint64, bool)

type Handler interface {
	ListComments(c *gin.Context)
	CreateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type handler struct {
	service Service
	userID  CurrentUserID
}

func NewHandler(service Service, userID CurrentUserID) Handler {
	return &handler{service: service, userID: userID}
}

// @Summary List task comments
// @Tags Comment
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {array} Comment
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tasks/{id}/comments [get]
func (h *handler) ListComments(c *gin.Context) {
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

	comments, err := h.service.ListComments(userID, taskID)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// @Summary Create comment
// @Tags Comment
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param comment body CreateCommentRequest true "Comment content"
// @Success 201 {object} Comment
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/tasks/{id}/comments [post]
func (h *handler) CreateComment(c *gin.Context) {
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

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	cm, err := h.service.CreateComment(userID, taskID, req)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cm)
}

// @Summary Delete comment
// @Description Delete a comment; only its author may do so
// @Tags Comment
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *handler) DeleteComment(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment ID"})
		return
	}

	if err := h.service.DeleteComment(userID, commentID); err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
