package handlers

import (
	"net/http"

	"github.com/campuscup/intramurals/middleware"
	"github.com/campuscup/intramurals/services"
)

type WagerHandler struct {
	wagers services.WagerService
}

func NewWagerHandler(wagers services.WagerService) *WagerHandler {
	return &WagerHandler{wagers: wagers}
}

// PlaceParlayHandler - POST /wagers. Одна нога - одиночная ставка,
// несколько - экспресс; коэффициенты фиксируются на момент размещения.
func (h *WagerHandler) PlaceParlayHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var req services.ParlayRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	parlay, err := h.wagers.PlaceParlay(r.Context(), userID, req)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"parlay": parlay}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
