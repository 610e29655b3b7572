package services

import (
	"testing"

	"github.com/campuscup/intramurals/models"
	"github.com/campuscup/intramurals/scoring"
)

func TestApplyOutcomeDeltas(t *testing.T) {
	const pointsForWin = 6

	cases := []struct {
		name     string
		outcome  scoring.Outcome
		wantHome models.TeamSeasonRecord
		wantAway models.TeamSeasonRecord
	}{
		{
			name:     "home win",
			outcome:  scoring.Resolve(3, 1, false, false),
			wantHome: models.TeamSeasonRecord{Games: 1, Wins: 1, Points: 6},
			wantAway: models.TeamSeasonRecord{Games: 1, Losses: 1},
		},
		{
			name:     "away win",
			outcome:  scoring.Resolve(0, 2, false, false),
			wantHome: models.TeamSeasonRecord{Games: 1, Losses: 1},
			wantAway: models.TeamSeasonRecord{Games: 1, Wins: 1, Points: 6},
		},
		{
			name:     "draw splits the win points",
			outcome:  scoring.Resolve(2, 2, false, false),
			wantHome: models.TeamSeasonRecord{Games: 1, Ties: 1, Points: 3},
			wantAway: models.TeamSeasonRecord{Games: 1, Ties: 1, Points: 3},
		},
		{
			name:     "home forfeit",
			outcome:  scoring.Resolve(0, 0, true, false),
			wantHome: models.TeamSeasonRecord{Games: 1, Losses: 1, Forfeits: 1},
			wantAway: models.TeamSeasonRecord{Games: 1, Wins: 1, Points: 6},
		},
		{
			name:     "double forfeit awards no win",
			outcome:  scoring.Resolve(0, 0, true, true),
			wantHome: models.TeamSeasonRecord{Games: 1, Forfeits: 1, Points: 3},
			wantAway: models.TeamSeasonRecord{Games: 1, Forfeits: 1, Points: 3},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			home := models.TeamSeasonRecord{}
			away := models.TeamSeasonRecord{}
			applyOutcomeDeltas(&home, &away, tc.outcome, pointsForWin)

			if home != tc.wantHome {
				t.Errorf("home deltas = %+v, want %+v", home, tc.wantHome)
			}
			if away != tc.wantAway {
				t.Errorf("away deltas = %+v, want %+v", away, tc.wantAway)
			}
			if home.Games != 1 || away.Games != 1 {
				t.Error("each side must gain exactly one game per settlement")
			}
		})
	}
}
