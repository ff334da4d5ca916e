package tag

import (
	"net/http"
	"strconv"

	"flowboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

type CurrentUserID func(c *gin.Context) (uint64, bool)

type Handler interface {
	ListTags(c *gin.Context)
	CreateTag(c *gin.Context)
	DeleteTag(c *gin.Context)
}

type handler struct {
	service Service
	userID  CurrentUserID
}

func NewHandler(service Service, userID CurrentUserID) Handler {
	return &handler{service: service, userID: userID}
}

// @Summary List tags
// @Description List the tags of one board, or of all owned boards when board_id is omitted
// @Tags Tag
// @Produce json
// @Param board_id query int false "Board ID"
// @Success 200 {array} Tag
// @Failure 403 {object} ErrorResponse
// @Router /api/tags [get]
func (h *handler) ListTags(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var boardID *uint64
	if raw := c.Query("board_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board_id"})
			return
		}
		boardID = &id
	}

	tags, err := h.service.ListTags(userID, boardID)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, tags)
}

// @Summary Create tag
// @Tags Tag
// @Accept json
// @Produce json
// @Param tag body CreateTagRequest true "Tag fields"
// @Success 201 {object} Tag
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/tags [post]
func (h *handler) CreateTag(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.service.CreateTag(userID, req)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary Delete tag
// @Description Delete a tag and detach it from all tasks
// @Tags Tag
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tags/{id} [delete]
func (h *handler) DeleteTag(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	tagID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tag ID"})
		return
	}

	if err := h.service.DeleteTag(userID, tagID); err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
