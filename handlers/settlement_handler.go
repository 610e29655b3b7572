package handlers

import (
	"net/http"

	"github.com/campuscup/intramurals/services"
)

type SettlementHandler struct {
	settlement services.SettlementService
}

func NewSettlementHandler(settlement services.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlement: settlement}
}

// SettleMatchHandler - POST /matches/{matchID}/settle.
// Авторизация (роль scorer/admin) проверена middleware до нас.
func (h *SettlementHandler) SettleMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var sub services.ScoreSubmission
	if err := readJSON(w, r, &sub); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.settlement.SettleMatch(r.Context(), matchID, sub)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"settlement": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
