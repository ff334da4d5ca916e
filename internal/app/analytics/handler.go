package analytics

import (
	"net/http"
	"strconv"

	"flowboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

type CurrentUserID func(c *gin.Context) (uint64, bool)

type Handler interface {
	GetBoardMetrics(c *gin.Context)
	GetDashboard(c *gin.Context)
}

type handler struct {
	service Service
	userID  CurrentUserID
}

func NewHandler(service Service, userID CurrentUserID) Handler {
	return &handler{service: service, userID: userID}
}

// @Summary Board analytics
// @Description Cycle time, throughput, WIP and completed counts for one board
// @Tags Analytics
// @Produce json
// @Param board_id query int false "Board ID (defaults to the requester's first board)"
// @Success 200 {object} BoardMetrics
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/analytics [get]
func (h *handler) GetBoardMetrics(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var boardID *uint64
	if v := c.Query("board_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board_id"})
			return
		}
		boardID = &id
	}

	metrics, err := h.service.GetBoardMetrics(userID, boardID)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// @Summary Dashboard
// @Description Cross-board stats, upcoming and overdue tasks, recent activity
// @Tags Analytics
// @Produce json
// @Success 200 {object} Dashboard
// @Router /api/dashboard [get]
func (h *handler) GetDashboard(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	dash, err := h.service.GetDashboard(userID)
	if err != nil {
		c.JSON(apperr.Status(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dash)
}
