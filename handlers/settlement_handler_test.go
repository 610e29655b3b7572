package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campuscup/intramurals/services"
	"github.com/go-chi/chi/v5"
)

type stubSettlementService struct {
	result *services.SettlementResult
	err    error

	gotMatchID int
	gotSub     services.ScoreSubmission
}

func (s *stubSettlementService) SettleMatch(ctx context.Context, matchID int, sub services.ScoreSubmission) (*services.SettlementResult, error) {
	s.gotMatchID = matchID
	s.gotSub = sub
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func settleRequest(t *testing.T, stub *stubSettlementService, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Post("/matches/{matchID}/settle", NewSettlementHandler(stub).SettleMatchHandler)

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"year":2026,"sport":"soccer","home_score":3,"away_score":1,"home_forfeit":false,"away_forfeit":false}`

func TestSettleMatchHandler_Success(t *testing.T) {
	stub := &stubSettlementService{result: &services.SettlementResult{
		MatchID: 42, Winner: "Crimson", Outcome: "decided", WagersSettled: 3, ParlaysClosed: 2,
	}}

	rec := settleRequest(t, stub, "/matches/42/settle", validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if stub.gotMatchID != 42 {
		t.Errorf("matchID = %d, want 42", stub.gotMatchID)
	}
	if stub.gotSub.Sport != "soccer" || stub.gotSub.HomeScore == nil || *stub.gotSub.HomeScore != 3 {
		t.Errorf("submission = %+v, want decoded body", stub.gotSub)
	}

	var payload struct {
		Settlement services.SettlementResult `json:"settlement"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Settlement.Winner != "Crimson" || payload.Settlement.WagersSettled != 3 {
		t.Errorf("response = %+v", payload.Settlement)
	}
}

func TestSettleMatchHandler_BadInput(t *testing.T) {
	cases := []struct {
		name   string
		target string
		body   string
	}{
		{"non-numeric id", "/matches/abc/settle", validBody},
		{"zero id", "/matches/0/settle", validBody},
		{"empty body", "/matches/42/settle", ""},
		{"unknown field", "/matches/42/settle", `{"year":2026,"referee":"pat"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := settleRequest(t, &stubSettlementService{}, tc.target, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSettleMatchHandler_ServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"already scored", fmt.Errorf("%w: 42", services.ErrMatchAlreadyScored), http.StatusConflict},
		{"match not found", fmt.Errorf("%w: 42", services.ErrMatchNotFound), http.StatusNotFound},
		{"unknown sport", fmt.Errorf("%w: %q", services.ErrSportNotFound, "quidditch"), http.StatusNotFound},
		{"missing forfeit flags", services.ErrForfeitRequired, http.StatusBadRequest},
		{"tx conflict", fmt.Errorf("%w: standings", services.ErrTxConflict), http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := settleRequest(t, &stubSettlementService{err: tc.err}, "/matches/42/settle", validBody)
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
