package dice

import (
	"errors"
	"log"
	"math/rand/v2"
)

// randomRoller implements Roller with math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = rand.IntN(sides) + 1
	}

	result := NewRollResult(count, sides, bonus, rolls)
	log.Printf("[DICE] %dd%d%+d: %v total %d", count, sides, bonus, rolls, result.Total)
	return result, nil
}
