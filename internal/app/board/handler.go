package board

import (
	"net/http"
	"strconv"

	"flowboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

type CurrentUserID func(c *gin.Context) (uint64, bool)

type Handler interface {
	ListBoards(c *gin.Context)
	CreateBoard(c *gin.Context)
	GetBoard(c *gin.Context)
	UpdateBoard(c *gin.Context)
	UpdateSettings(c *gin.Context)
	DeleteBoard(c *gin.Context)
}

type handler struct {
	service Service
	userID  CurrentUserID
}

func NewHandler(service Service, userID CurrentUserID) Handler {
	return &handler{service: service, userID: userID}
}

// @Summary List boards
// @Description List all boards owned by the requester
// @Tags Board
// @Produce json
// @Success 200 {array} Board
// @Router /api/boards [get]
func (h *handler) ListBoards(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	boards, err := h.service.ListBoards(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch boards"})
		return
	}
	c.JSON(http.StatusOK, boards)
}

// @Summary Create board
// @Tags Board
// @Accept json
// @Produce json
// @Param board body CreateBoardRequest true "Board fields"
// @Success 201 {object} Board
// @Failure 422 {object} ErrorResponse
// @Router /api/boards [post]
func (h *handler) CreateBoard(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.service.CreateBoard(userID, req)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// @Summary Get board
// @Tags Board
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} Board
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id} [get]
func (h *handler) GetBoard(c *gin.Context) {
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

	b, err := h.service.GetBoard(userID, boardID)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Update board
// @Tags Board
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param board body UpdateBoardRequest true "Fields to update"
// @Success 200 {object} Board
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id} [put]
func (h *handler) UpdateBoard(c *gin.Context) {
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

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.service.UpdateBoard(userID, boardID, req)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Update board settings
// @Description Update title, description, theme color and WIP limits
// @Tags Board
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param settings body SettingsRequest true "Settings"
// @Success 200 {object} Board
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id}/settings [put]
func (h *handler) UpdateSettings(c *gin.Context) {
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

	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.service.UpdateSettings(userID, boardID, req)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Delete board
// @Description Delete a board and cascade its tasks and tags
// @Tags Board
// @Param id path int true "Board ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id} [delete]
func (h *handler) DeleteBoard(c *gin.Context) {
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

	if err := h.service.DeleteBoard(userID, boardID); err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
