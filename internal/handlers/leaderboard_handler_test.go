package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"budgetboard/internal/models"
	"budgetboard/internal/services"
)

type mockLeaderboardService struct {
	rankFn func(month string) ([]models.LeaderboardEntry, error)
}

func (m *mockLeaderboardService) Rank(_ context.Context, month string) ([]models.LeaderboardEntry, error) {
	if m.rankFn != nil {
		return m.rankFn(month)
	}
	return []models.LeaderboardEntry{}, nil
}

var _ services.LeaderboardServicer = (*mockLeaderboardService)(nil)

func setupLeaderboardRouter(handler *LeaderboardHandler) *gin.Engine {
	r := gin.New()
	r.GET("/leaderboard", handler.GetLeaderboard)
	return r
}

func TestLeaderboardHandler_GetLeaderboard(t *testing.T) {
	t.Run("returns 200 with ranked entries", func(t *testing.T) {
		var gotMonth string
		svc := &mockLeaderboardService{
			rankFn: func(month string) ([]models.LeaderboardEntry, error) {
				gotMonth = month
				return []models.LeaderboardEntry{
					{UserID: "carol", TotalSavings: 900},
					{UserID: "alice", TotalSavings: 700},
				}, nil
			},
		}
		handler := NewLeaderboardHandler(svc)
		r := setupLeaderboardRouter(handler)

		rec := doRequest(r, "GET", "/leaderboard?month=April", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth != "April" {
			t.Errorf("expected month April, got %q", gotMonth)
		}

		var board []models.LeaderboardEntry
		if err := json.Unmarshal(rec.Body.Bytes(), &board); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(board) != 2 || board[0].UserID != "carol" || board[1].UserID != "alice" {
			t.Errorf("unexpected board: %+v", board)
		}
	})

	t.Run("returns 200 with empty list", func(t *testing.T) {
		handler := NewLeaderboardHandler(&mockLeaderboardService{})
		r := setupLeaderboardRouter(handler)

		rec := doRequest(r, "GET", "/leaderboard?month=April", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "[]" {
			t.Errorf("expected empty array, got %s", body)
		}
	})

	t.Run("returns 400 without month", func(t *testing.T) {
		handler := NewLeaderboardHandler(&mockLeaderboardService{})
		r := setupLeaderboardRouter(handler)

		rec := doRequest(r, "GET", "/leaderboard", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 500 on unexpected error", func(t *testing.T) {
		svc := &mockLeaderboardService{
			rankFn: func(_ string) ([]models.LeaderboardEntry, error) {
				return nil, errors.New("boom")
			},
		}
		handler := NewLeaderboardHandler(svc)
		r := setupLeaderboardRouter(handler)

		rec := doRequest(r, "GET", "/leaderboard?month=April", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
