package scoring

import "testing"

func TestComputeOdds(t *testing.T) {
	t.Run("equal ratings give symmetric odds", func(t *testing.T) {
		odds := ComputeOdds(1000, 1000)
		if odds.Home != odds.Away {
			t.Errorf("symmetric pairing must give equal odds, got %f / %f", odds.Home, odds.Away)
		}
		if odds.Home <= 1.0 {
			t.Errorf("odds must exceed 1.0, got %f", odds.Home)
		}
	})

	t.Run("favorite pays less", func(t *testing.T) {
		odds := ComputeOdds(1300, 1000)
		if odds.Home >= odds.Away {
			t.Errorf("favorite odds %f must be below underdog odds %f", odds.Home, odds.Away)
		}
	})

	t.Run("extreme gap is clamped", func(t *testing.T) {
		odds := ComputeOdds(3000, 500)
		if odds.Home < minOdds {
			t.Errorf("home odds below floor: %f", odds.Home)
		}
		if odds.Away > maxOdds {
			t.Errorf("away odds above ceiling: %f", odds.Away)
		}
	})

	t.Run("draw and default odds are fixed by rating gap policy", func(t *testing.T) {
		near := ComputeOdds(1000, 1010)
		far := ComputeOdds(1000, 1800)
		if near.Draw != far.Draw {
			t.Errorf("draw odds must not depend on the gap, got %f vs %f", near.Draw, far.Draw)
		}
		if near.Default != defaultOdds || far.Default != defaultOdds {
			t.Errorf("default odds must stay fixed, got %f / %f", near.Default, far.Default)
		}
	})
}
