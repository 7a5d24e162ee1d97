package engine

import "time"

// HouseRules holds the fixed prices and prizes of the game.
type HouseRules struct {
	VowelPrice   int           // debited from the round score for every vowel purchase
	ExpressPrize int           // pending value (per occurrence) while in Express mode
	JollyPrize   int           // pending value when the Jolly segment is up for grabs
	JollySegment int           // wheel segment index that offers the Jolly
	PenaltyDelay time.Duration // pause before the turn passes after a failure
	MinPlayers   int
	MaxPlayers   int
}

// DefaultHouseRules returns the standard rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		VowelPrice:   500,
		ExpressPrize: 1000,
		JollyPrize:   200,
		JollySegment: 20,
		PenaltyDelay: 1500 * time.Millisecond,
		MinPlayers:   1,
		MaxPlayers:   6,
	}
}
