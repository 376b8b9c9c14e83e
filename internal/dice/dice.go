package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSides is used when a formula omits the die size
const DefaultSides = 6

// RollResult holds the dice that were rolled and their total
type RollResult struct {
	Formula  string
	Count    int
	Sides    int
	Bonus    int
	Rolls    []int
	RawTotal int
	Total    int
	Highest  int
	Lowest   int
}

// ErrInvalidFormula is returned for formulas that are not NdS[+/-B]
var ErrInvalidFormula = errors.New("invalid dice formula")

// ParseFormula splits "3d6", "3d10+2", "2d6-1" or "d20" into count, sides
// and bonus
func ParseFormula(formula string) (count, sides, bonus int, err error) {
	f := strings.ToLower(strings.ReplaceAll(formula, " ", ""))
	if f == "" {
		return 0, 0, 0, ErrInvalidFormula
	}

	dice := f
	if i := strings.LastIndexAny(f, "+-"); i > 0 {
		bonus, err = strconv.Atoi(f[i:])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: bad modifier in %q", ErrInvalidFormula, formula)
		}
		dice = f[:i]
	}

	parts := strings.Split(dice, "d")
	if len(parts) != 2 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormula, formula)
	}

	count = 1
	if parts[0] != "" {
		count, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: bad count in %q", ErrInvalidFormula, formula)
		}
	}

	sides = DefaultSides
	if parts[1] != "" {
		sides, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: bad sides in %q", ErrInvalidFormula, formula)
		}
	}

	if count < 1 || sides < 1 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormula, formula)
	}

	return count, sides, bonus, nil
}

// Evaluate parses a formula and rolls it with the given roller
func Evaluate(r Roller, formula string) (*RollResult, error) {
	count, sides, bonus, err := ParseFormula(formula)
	if err != nil {
		return nil, err
	}

	result, err := r.Roll(count, sides, bonus)
	if err != nil {
		return nil, err
	}
	result.Formula = formula
	return result, nil
}

// NewRollResult totals a set of rolled dice
func NewRollResult(count, sides, bonus int, rolls []int) *RollResult {
	result := &RollResult{
		Count: count,
		Sides: sides,
		Bonus: bonus,
		Rolls: rolls,
	}
	for i, roll := range rolls {
		result.RawTotal += roll
		if i == 0 || roll > result.Highest {
			result.Highest = roll
		}
		if i == 0 || roll < result.Lowest {
			result.Lowest = roll
		}
	}
	result.Total = result.RawTotal + bonus
	return result
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("**%d** : %s", r.Total, compact)
}
