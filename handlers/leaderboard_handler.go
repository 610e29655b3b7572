package handlers

import (
	"net/http"

	"github.com/campuscup/intramurals/services"
)

type LeaderboardHandler struct {
	ranks services.RankService
}

func NewLeaderboardHandler(ranks services.RankService) *LeaderboardHandler {
	return &LeaderboardHandler{ranks: ranks}
}

// GetLeaderboardHandler - GET /seasons/{year}/leaderboard.
func (h *LeaderboardHandler) GetLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	year, err := getIDFromURL(r, "year")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.ranks.Leaderboard(r.Context(), year)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
