package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetboard/internal/errors"
	"budgetboard/internal/services"
)

// LeaderboardHandler handles savings leaderboard requests.
type LeaderboardHandler struct {
	leaderboardService services.LeaderboardServicer
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService services.LeaderboardServicer) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard ranks all registered users by savings for a month.
// An empty list is a valid result; users without data for the month are
// simply absent from it.
// @Summary     Savings leaderboard
// @Description Rank users by monthly budget minus amount spent, descending
// @Tags        leaderboard
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Month name"
// @Success     200 {array} models.LeaderboardEntry "Ranked entries"
// @Failure     400 {object} ErrorResponse "Missing month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month is required"))
		return
	}

	entries, err := h.leaderboardService.Rank(c.Request.Context(), month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
