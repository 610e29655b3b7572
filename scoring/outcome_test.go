package scoring

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		name        string
		homeScore   int
		awayScore   int
		homeForfeit bool
		awayForfeit bool
		wantKind    OutcomeKind
		wantWinner  Side
	}{
		{"home wins on score", 3, 1, false, false, OutcomeDecided, SideHome},
		{"away wins on score", 0, 2, false, false, OutcomeDecided, SideAway},
		{"equal scores draw", 2, 2, false, false, OutcomeDraw, SideNone},
		{"zero zero draw", 0, 0, false, false, OutcomeDraw, SideNone},
		{"home forfeit gives away the win", 5, 0, true, false, OutcomeSingleForfeit, SideAway},
		{"away forfeit gives home the win", 0, 5, false, true, OutcomeSingleForfeit, SideHome},
		{"double forfeit", 0, 0, true, true, OutcomeDoubleForfeit, SideNone},
		// Приоритет: неявка бьёт сравнение счёта, даже при равном счёте.
		{"forfeit beats score comparison", 3, 1, true, false, OutcomeSingleForfeit, SideAway},
		{"forfeit beats draw", 1, 1, false, true, OutcomeSingleForfeit, SideHome},
		{"double forfeit beats single", 3, 1, true, true, OutcomeDoubleForfeit, SideNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.homeScore, tc.awayScore, tc.homeForfeit, tc.awayForfeit)
			if got.Kind != tc.wantKind {
				t.Errorf("Resolve kind = %v, want %v", got.Kind, tc.wantKind)
			}
			if got.Winner != tc.wantWinner {
				t.Errorf("Resolve winner = %v, want %v", got.Winner, tc.wantWinner)
			}
		})
	}
}

func TestOutcomeDefinitive(t *testing.T) {
	if !(Outcome{Kind: OutcomeDecided, Winner: SideHome}).Definitive() {
		t.Error("decided outcome must be definitive")
	}
	if !(Outcome{Kind: OutcomeSingleForfeit, Winner: SideAway}).Definitive() {
		t.Error("single forfeit must be definitive")
	}
	if (Outcome{Kind: OutcomeDraw}).Definitive() {
		t.Error("draw must not be definitive")
	}
	if (Outcome{Kind: OutcomeDoubleForfeit}).Definitive() {
		t.Error("double forfeit must not be definitive")
	}
}
